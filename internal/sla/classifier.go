package sla

import (
	"time"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// Classifier combines a normalized ticket with a caller-supplied "now" to
// produce an SLA evaluation against the business calendar.
type Classifier struct {
	schedule *WeeklySchedule
}

// NewClassifier builds a classifier over the given schedule.
func NewClassifier(schedule *WeeklySchedule) *Classifier {
	return &Classifier{schedule: schedule}
}

// Evaluate measures elapsed business hours and classifies compliance.
//
// A nil opened instant yields zero elapsed hours: the ticket contributes no
// signal but is still classified. Resolved tickets are measured against their
// close instant (or now, when the close timestamp failed to parse); open
// tickets against now. The deadline comparison is non-strict: elapsed equal
// to the deadline is still within it.
func (c *Classifier) Evaluate(ticket domain.NormalizedTicket, now time.Time) domain.SlaEvaluation {
	var elapsed float64
	if ticket.Opened != nil {
		endPoint := now
		if ticket.Resolved && ticket.Closed != nil {
			endPoint = *ticket.Closed
		}
		elapsed = c.schedule.BusinessHoursBetween(*ticket.Opened, endPoint)
	}

	var status domain.SlaStatus
	within := elapsed <= ticket.DeadlineHours
	switch {
	case !ticket.Resolved && within:
		status = domain.SlaStatusOpenWithinDeadline
	case !ticket.Resolved:
		status = domain.SlaStatusOpenBreached
	case within:
		status = domain.SlaStatusCompliant
	default:
		status = domain.SlaStatusBreached
	}

	return domain.SlaEvaluation{
		TicketID:      ticket.ID,
		Assignee:      ticket.Assignee,
		Opened:        ticket.Opened,
		Resolved:      ticket.Resolved,
		ElapsedHours:  elapsed,
		DeadlineHours: ticket.DeadlineHours,
		Status:        status,
		EvaluatedAt:   now,
	}
}
