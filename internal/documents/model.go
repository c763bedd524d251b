package documents

import "time"

// Document is an uploaded CV: the extracted text plus ownership metadata.
// Ids are sequential and assigned by the store; records are immutable after
// creation.
type Document struct {
	ID        int64
	OwnerID   string
	FileName  string
	Text      string
	CreatedAt time.Time
}

// ReportSummary is the slice of a report exposed when listing documents.
type ReportSummary struct {
	ID        int64
	CreatedAt time.Time
}

// DocumentWithReport is a document joined with its report summary, if one
// exists.
type DocumentWithReport struct {
	Document
	Report *ReportSummary
}
