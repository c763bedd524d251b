package reports

import "time"

// ReportResponse is the outward-facing representation of a report.
type ReportResponse struct {
	ReportID     int64     `json:"reportId"`
	DocumentID   int64     `json:"documentId"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
	DocumentText string    `json:"documentText,omitempty"`
}

func toResponse(report Report) ReportResponse {
	return ReportResponse{
		ReportID:   report.ID,
		DocumentID: report.DocumentID,
		Text:       report.Text,
		CreatedAt:  report.CreatedAt,
	}
}

func toResponseWithDocument(item ReportWithDocument) ReportResponse {
	resp := toResponse(item.Report)
	resp.DocumentText = item.DocumentText
	return resp
}
