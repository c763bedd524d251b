package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID int64     `json:"documentId"`
	FileName   string    `json:"fileName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListItemResponse joins a document with its report summary for listing.
type ListItemResponse struct {
	DocumentID      int64      `json:"documentId"`
	FileName        string     `json:"fileName"`
	Text            string     `json:"text"`
	CreatedAt       time.Time  `json:"createdAt"`
	ReportID        *int64     `json:"reportId"`
	ReportCreatedAt *time.Time `json:"reportCreatedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		Text:       doc.Text,
		CreatedAt:  doc.CreatedAt,
	}
}

func toListItem(item DocumentWithReport) ListItemResponse {
	resp := ListItemResponse{
		DocumentID: item.ID,
		FileName:   item.FileName,
		Text:       item.Text,
		CreatedAt:  item.CreatedAt,
	}
	if item.Report != nil {
		resp.ReportID = &item.Report.ID
		resp.ReportCreatedAt = &item.Report.CreatedAt
	}
	return resp
}
