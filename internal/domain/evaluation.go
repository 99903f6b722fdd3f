package domain

import "time"

// SlaStatus enumerates compliance outcomes for a ticket.
type SlaStatus string

const (
	SlaStatusCompliant          SlaStatus = "COMPLIANT"
	SlaStatusBreached           SlaStatus = "BREACHED"
	SlaStatusOpenWithinDeadline SlaStatus = "OPEN_WITHIN_DEADLINE"
	SlaStatusOpenBreached       SlaStatus = "OPEN_BREACHED"
)

// IsBreach reports whether the status counts as a breach for aggregate
// reporting, covering both resolved and still-open tickets.
func (s SlaStatus) IsBreach() bool {
	return s == SlaStatusBreached || s == SlaStatusOpenBreached
}

// SlaEvaluation is the engine output for one ticket.
type SlaEvaluation struct {
	ID            string
	BatchID       string
	TicketID      string
	Assignee      string
	Opened        *time.Time
	Resolved      bool
	ElapsedHours  float64
	DeadlineHours float64
	Status        SlaStatus
	EvaluatedAt   time.Time
}

// AssigneeSummary is one row of the per-assignee compliance report.
type AssigneeSummary struct {
	Assignee      string
	Assigned      int
	Resolved      int
	Breached      int
	CompliancePct float64
}
