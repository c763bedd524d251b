package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

var (
	// ErrUnsupportedMediaType is returned for any declared type other than PDF.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrExtractionFailed wraps decoder failures on malformed input.
	ErrExtractionFailed = errors.New("extraction failed")
)

// Text extracts plain text from an uploaded payload. Only a declared
// application/pdf type is accepted; anything else is rejected before the
// payload is touched. On success the text is UTF-8 with surrounding
// whitespace trimmed; internal whitespace and page breaks are passed
// through as the decoder produces them.
// Library used: github.com/ledongthuc/pdf.
func Text(data []byte, declaredType string) (string, error) {
	if normalizeMediaType(declaredType) != mimePDF {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, declaredType)
	}
	text, err := extractPDF(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return strings.TrimSpace(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMediaType(declared string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
}
