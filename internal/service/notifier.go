package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-compliance-service/internal/events"
)

// Notifier turns domain events into operator-facing notifications. The
// current sink is the structured log; the subscription seam is where an
// email or webhook sender would attach.
type Notifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotifier builds the notifier.
func NewNotifier(dispatcher events.Dispatcher, logger *zap.Logger) *Notifier {
	return &Notifier{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the events worth surfacing.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBatchProcessed, n.onBatchProcessed)
	n.dispatcher.Subscribe(events.EventTicketBreached, n.onTicketBreached)
}

func (n *Notifier) onBatchProcessed(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BatchProcessedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("report batch ready",
		zap.String("batch_id", event.BatchID),
		zap.String("source", payload.Source),
		zap.Int("rows", payload.RowCount),
		zap.Int("breaches", payload.BreachCount),
	)
	return nil
}

func (n *Notifier) onTicketBreached(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketBreachedPayload)
	if !ok {
		return nil
	}
	n.logger.Warn("sla breached",
		zap.String("batch_id", event.BatchID),
		zap.String("ticket_id", payload.TicketID),
		zap.String("assignee", payload.Assignee),
		zap.String("status", string(payload.Status)),
		zap.Float64("elapsed_hours", payload.ElapsedHours),
		zap.Float64("deadline_hours", payload.DeadlineHours),
	)
	return nil
}
