package dto

import (
	"time"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// LoginRequest carries the shared admin PIN.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BatchResponse describes one processed upload.
type BatchResponse struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	RowCount     int       `json:"row_count"`
	DegradedRows int       `json:"degraded_rows"`
	CreatedAt    time.Time `json:"created_at"`
}

// EvaluationResponse is one enriched ticket row.
type EvaluationResponse struct {
	TicketID      string           `json:"ticket_id"`
	Assignee      string           `json:"assignee"`
	Resolved      bool             `json:"resolved"`
	ElapsedHours  float64          `json:"business_hours_elapsed"`
	DeadlineHours float64          `json:"deadline_hours"`
	Status        domain.SlaStatus `json:"sla_status"`
}

// SummaryResponse is one per-assignee report row.
type SummaryResponse struct {
	Assignee      string  `json:"assignee"`
	Assigned      int     `json:"assigned"`
	Resolved      int     `json:"resolved"`
	Breached      int     `json:"breached"`
	CompliancePct float64 `json:"compliance_pct"`
}

// ProcessReportResponse is the payload returned by an upload.
type ProcessReportResponse struct {
	Batch       BatchResponse        `json:"batch"`
	Evaluations []EvaluationResponse `json:"evaluations"`
	Summaries   []SummaryResponse    `json:"summaries"`
}
