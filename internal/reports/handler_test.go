package reports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-report-backend/internal/bootstrap"
	"cv-report-backend/internal/shared/config"
)

type fakeLLM struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestApp(t *testing.T, client *fakeLLM) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:3000"},
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	app.ReportsService.LLM = client
	return app
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env
}

func uploadDocument(t *testing.T, router *gin.Engine, guestID, text string) int64 {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="cv.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form part: %v", err)
	}
	if _, err := part.Write(minimalPDF(t, text)); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		DocumentID int64 `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return created.DocumentID
}

func postGenerate(t *testing.T, router *gin.Engine, guestID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if guestID != "" {
		req.Header.Set("X-Guest-Id", guestID)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestReportGenerateFetchAndConflict(t *testing.T) {
	client := &fakeLLM{reply: "jane@example.com"}
	app := newTestApp(t, client)
	router := app.Router

	docID := uploadDocument(t, router, "guest-a", "Jane Doe, jane@example.com")

	resp := postGenerate(t, router, "guest-a", fmt.Sprintf(`{"documentId":%d}`, docID))
	if resp.Code != http.StatusCreated {
		t.Fatalf("generate: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ReportID   int64  `json:"reportId"`
		DocumentID int64  `json:"documentId"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}
	if created.ReportID <= 0 || created.DocumentID != docID {
		t.Fatalf("unexpected generate response: %+v", created)
	}
	if created.Text != "jane@example.com" {
		t.Fatalf("unexpected report text: %q", created.Text)
	}

	// A second generation for the same document conflicts and does not hit
	// the completion provider again.
	resp2 := postGenerate(t, router, "guest-a", fmt.Sprintf(`{"documentId":%d}`, docID))
	if resp2.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp2.Code, resp2.Body.String())
	}
	if env := decodeError(t, resp2); env.Error.Code != "conflict" {
		t.Fatalf("expected conflict, got %q", env.Error.Code)
	}
	if client.callCount() != 1 {
		t.Fatalf("expected 1 completion call, got %d", client.callCount())
	}

	// The owner reads the report joined with the document text.
	reqGet := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reports/%d", created.ReportID), nil)
	reqGet.Header.Set("X-Guest-Id", "guest-a")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %s", respGet.Code, respGet.Body.String())
	}
	var fetched struct {
		ReportID     int64  `json:"reportId"`
		Text         string `json:"text"`
		DocumentText string `json:"documentText"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.ReportID != created.ReportID || fetched.Text != "jane@example.com" {
		t.Fatalf("unexpected fetched report: %+v", fetched)
	}
	if !strings.Contains(fetched.DocumentText, "jane@example.com") {
		t.Fatalf("expected documentText to contain the source text, got %q", fetched.DocumentText)
	}

	// Another principal cannot read it.
	reqForeign := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reports/%d", created.ReportID), nil)
	reqForeign.Header.Set("X-Guest-Id", "guest-b")
	respForeign := httptest.NewRecorder()
	router.ServeHTTP(respForeign, reqForeign)

	if respForeign.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", respForeign.Code)
	}
	if env := decodeError(t, respForeign); env.Error.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %q", env.Error.Code)
	}
}

func TestReportGenerateUnknownDocument(t *testing.T) {
	client := &fakeLLM{reply: "jane@example.com"}
	app := newTestApp(t, client)

	resp := postGenerate(t, app.Router, "guest-a", `{"documentId":999}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if env := decodeError(t, resp); env.Error.Code != "not_found" {
		t.Fatalf("expected not_found, got %q", env.Error.Code)
	}
	if client.callCount() != 0 {
		t.Fatalf("completion must not run for unknown documents, got %d calls", client.callCount())
	}
}

func TestReportGenerateForeignDocument(t *testing.T) {
	client := &fakeLLM{reply: "jane@example.com"}
	app := newTestApp(t, client)
	router := app.Router

	docID := uploadDocument(t, router, "guest-a", "Jane Doe, jane@example.com")

	resp := postGenerate(t, router, "guest-b", fmt.Sprintf(`{"documentId":%d}`, docID))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
	if env := decodeError(t, resp); env.Error.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %q", env.Error.Code)
	}
}

func TestReportGenerateValidation(t *testing.T) {
	app := newTestApp(t, &fakeLLM{reply: "x"})
	router := app.Router

	resp := postGenerate(t, router, "guest-a", `{"documentId":0}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing documentId: expected 400, got %d", resp.Code)
	}

	resp = postGenerate(t, router, "guest-a", `{not json`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", resp.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/reports/abc", nil)
	reqGet.Header.Set("X-Guest-Id", "guest-a")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusBadRequest {
		t.Fatalf("bad report id: expected 400, got %d", respGet.Code)
	}
}

func TestReportGenerateRequiresIdentity(t *testing.T) {
	app := newTestApp(t, &fakeLLM{reply: "x"})

	resp := postGenerate(t, app.Router, "", `{"documentId":1}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if env := decodeError(t, resp); env.Error.Code != "unauthorized" {
		t.Fatalf("expected unauthorized, got %q", env.Error.Code)
	}
}

func TestReportGenerateCompletionFailure(t *testing.T) {
	client := &fakeLLM{err: errors.New("upstream boom")}
	app := newTestApp(t, client)
	router := app.Router

	docID := uploadDocument(t, router, "guest-a", "Jane Doe, jane@example.com")

	resp := postGenerate(t, router, "guest-a", fmt.Sprintf(`{"documentId":%d}`, docID))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}
	if env := decodeError(t, resp); env.Error.Code != "completion_failed" {
		t.Fatalf("expected completion_failed, got %q", env.Error.Code)
	}

	// The failed attempt persisted nothing, so a retry succeeds.
	client.mu.Lock()
	client.err = nil
	client.reply = "jane@example.com"
	client.mu.Unlock()

	respRetry := postGenerate(t, router, "guest-a", fmt.Sprintf(`{"documentId":%d}`, docID))
	if respRetry.Code != http.StatusCreated {
		t.Fatalf("retry: expected 201, got %d: %s", respRetry.Code, respRetry.Body.String())
	}
}

func TestReportUnknownID(t *testing.T) {
	app := newTestApp(t, &fakeLLM{reply: "x"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/12345", nil)
	req.Header.Set("X-Guest-Id", "guest-a")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if env := decodeError(t, resp); env.Error.Code != "not_found" {
		t.Fatalf("expected not_found, got %q", env.Error.Code)
	}
}
