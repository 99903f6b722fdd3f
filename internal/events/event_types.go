package events

import (
	"time"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBatchProcessed EventType = "batch_processed"
	EventTicketBreached EventType = "ticket_breached"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	BatchID   string      `json:"batch_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BatchProcessedPayload payload.
type BatchProcessedPayload struct {
	Source       string `json:"source"`
	RowCount     int    `json:"row_count"`
	DegradedRows int    `json:"degraded_rows"`
	BreachCount  int    `json:"breach_count"`
}

// TicketBreachedPayload payload.
type TicketBreachedPayload struct {
	TicketID      string           `json:"ticket_id"`
	Assignee      string           `json:"assignee"`
	Status        domain.SlaStatus `json:"status"`
	ElapsedHours  float64          `json:"elapsed_hours"`
	DeadlineHours float64          `json:"deadline_hours"`
}
