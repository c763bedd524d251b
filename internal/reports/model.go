package reports

import "time"

// Report is the generated analysis for a document. At most one exists per
// document; records are immutable after creation.
type Report struct {
	ID         int64
	DocumentID int64
	OwnerID    string
	Text       string
	CreatedAt  time.Time
}

// ReportWithDocument is a report joined with its parent document's text for
// display.
type ReportWithDocument struct {
	Report
	DocumentText string
}
