package worker

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-compliance-service/internal/service"
)

// ReevaluationWorker periodically refreshes elapsed hours for open tickets so
// deadline breaches surface without a new upload.
type ReevaluationWorker struct {
	cron    *cron.Cron
	service *service.ReportService
	spec    string
	logger  *zap.Logger
}

// NewReevaluationWorker builds the worker on the given cron spec.
func NewReevaluationWorker(reportService *service.ReportService, spec string, logger *zap.Logger) *ReevaluationWorker {
	return &ReevaluationWorker{
		cron:    cron.New(),
		service: reportService,
		spec:    spec,
		logger:  logger,
	}
}

// Start schedules the job and begins the cron loop.
func (w *ReevaluationWorker) Start() error {
	if _, err := w.cron.AddFunc(w.spec, w.run); err != nil {
		return err
	}
	w.cron.Start()
	w.logger.Info("re-evaluation worker started", zap.String("spec", w.spec))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (w *ReevaluationWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("re-evaluation worker stopped")
}

func (w *ReevaluationWorker) run() {
	flipped, err := w.service.ReevaluateOpenTickets(context.Background())
	if err != nil {
		w.logger.Error("open ticket re-evaluation failed", zap.Error(err))
		return
	}
	if flipped > 0 {
		w.logger.Info("open tickets re-evaluated", zap.Int("new_breaches", flipped))
	}
}
