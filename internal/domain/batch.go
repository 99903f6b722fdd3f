package domain

import "time"

// ReportBatch records one processed upload of a ticket export.
type ReportBatch struct {
	ID           string
	Source       string
	RowCount     int
	DegradedRows int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
