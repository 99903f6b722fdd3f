package domain

import "time"

// RawTicket is one row of a helpdesk export, exactly as read from the source
// system. Timestamps and labels stay free text until normalization.
type RawTicket struct {
	ID          string
	Status      string
	Priority    string
	OpenedRaw   string
	ModifiedRaw string
	Assignee    string
}

// NormalizedTicket is a RawTicket after timestamp parsing, offset correction
// and status/priority canonicalization. Closed is nil whenever Resolved is
// false; Opened is nil when the source timestamp was blank or unparseable.
type NormalizedTicket struct {
	ID            string
	Assignee      string
	Opened        *time.Time
	Resolved      bool
	Closed        *time.Time
	DeadlineHours float64
}
