package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-compliance-service/internal/config"
	"github.com/spec-kit/sla-compliance-service/internal/domain"
	"github.com/spec-kit/sla-compliance-service/internal/events"
	"github.com/spec-kit/sla-compliance-service/internal/export"
	"github.com/spec-kit/sla-compliance-service/internal/ingest"
	"github.com/spec-kit/sla-compliance-service/internal/observability"
	"github.com/spec-kit/sla-compliance-service/internal/persistence"
	"github.com/spec-kit/sla-compliance-service/internal/repository"
	"github.com/spec-kit/sla-compliance-service/internal/sla"
	apperrors "github.com/spec-kit/sla-compliance-service/pkg/util"
)

const summaryCacheTTL = 24 * time.Hour

// ReportService runs the SLA pipeline over uploaded ticket exports and serves
// compliance summaries. Persistence and caching are optional: without a
// database, uploads are processed in memory and only the response carries the
// results.
type ReportService struct {
	normalizer  *sla.Normalizer
	classifier  *sla.Classifier
	columns     ingest.Columns
	delimiter   rune
	batches     repository.BatchRepository
	evaluations repository.EvaluationRepository
	cache       *persistence.Redis
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	BatchRepo      repository.BatchRepository
	EvaluationRepo repository.EvaluationRepository
	Cache          *persistence.Redis
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	Now            func() time.Time
}

// ProcessResult is the outcome of one processed upload.
type ProcessResult struct {
	Batch       domain.ReportBatch
	Evaluations []domain.SlaEvaluation
	Summaries   []domain.AssigneeSummary
}

// NewReportService builds the pipeline from the rule tables.
func NewReportService(rules config.RulesConfig, deps ReportDependencies) (*ReportService, error) {
	schedule, err := rules.BuildSchedule()
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		normalizer:  sla.NewNormalizer(rules.NormalizerOptions()),
		classifier:  sla.NewClassifier(schedule),
		columns:     rules.IngestColumns(),
		delimiter:   rules.DelimiterRune(),
		batches:     deps.BatchRepo,
		evaluations: deps.EvaluationRepo,
		cache:       deps.Cache,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      logger,
		now:         now,
	}, nil
}

// ProcessUpload parses one ticket export and runs the full pipeline:
// normalize, evaluate, aggregate, persist, cache. Column validation failures
// reject the batch before any row is touched; degraded rows never do.
func (s *ReportService) ProcessUpload(ctx context.Context, source string, r io.Reader) (*ProcessResult, error) {
	ds, err := ingest.ReadDataset(r, s.columns, s.delimiter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	batch := domain.ReportBatch{
		ID:       uuid.NewString(),
		Source:   source,
		RowCount: len(ds.Tickets),
	}

	evaluations := make([]domain.SlaEvaluation, 0, len(ds.Tickets))
	breaches := 0
	for _, raw := range ds.Tickets {
		ticket := s.normalizer.Normalize(raw)
		if s.normalizer.Degraded(ticket) {
			batch.DegradedRows++
		}
		eval := s.classifier.Evaluate(ticket, now)
		eval.ID = uuid.NewString()
		eval.BatchID = batch.ID
		evaluations = append(evaluations, eval)

		if eval.Status.IsBreach() {
			breaches++
			s.publishEvent(ctx, events.Event{
				Type:    events.EventTicketBreached,
				BatchID: batch.ID,
				Payload: events.TicketBreachedPayload{
					TicketID:      eval.TicketID,
					Assignee:      eval.Assignee,
					Status:        eval.Status,
					ElapsedHours:  eval.ElapsedHours,
					DeadlineHours: eval.DeadlineHours,
				},
			})
		}
	}

	if s.batches != nil {
		if err := s.batches.Create(ctx, &batch); err != nil {
			return nil, err
		}
	}
	if s.evaluations != nil {
		if err := s.evaluations.CreateAll(ctx, evaluations); err != nil {
			return nil, err
		}
	}

	summaries := sla.Summarize(evaluations)
	s.cacheSummaries(ctx, batch.ID, summaries)
	s.metrics.RecordBatch(batch.RowCount, batch.DegradedRows)

	s.publishEvent(ctx, events.Event{
		Type:    events.EventBatchProcessed,
		BatchID: batch.ID,
		Payload: events.BatchProcessedPayload{
			Source:       source,
			RowCount:     batch.RowCount,
			DegradedRows: batch.DegradedRows,
			BreachCount:  breaches,
		},
	})
	s.logger.Info("batch processed",
		zap.String("batch_id", batch.ID),
		zap.Int("rows", batch.RowCount),
		zap.Int("degraded_rows", batch.DegradedRows),
		zap.Int("breaches", breaches),
	)

	return &ProcessResult{Batch: batch, Evaluations: evaluations, Summaries: summaries}, nil
}

// ExportUpload evaluates one ticket export and writes the augmented CSV:
// all source columns preserved, enriched columns appended. Nothing is
// persisted; the export is a pure transformation of its input.
func (s *ReportService) ExportUpload(r io.Reader, w io.Writer) error {
	ds, err := ingest.ReadDataset(r, s.columns, s.delimiter)
	if err != nil {
		return err
	}

	now := s.now()
	evaluations := make([]domain.SlaEvaluation, 0, len(ds.Tickets))
	for _, raw := range ds.Tickets {
		evaluations = append(evaluations, s.classifier.Evaluate(s.normalizer.Normalize(raw), now))
	}
	return export.WriteAugmented(w, ds, evaluations, s.delimiter)
}

// GetSummary returns the per-assignee report for a batch, preferring the
// cache and falling back to recomputing from stored evaluations.
func (s *ReportService) GetSummary(ctx context.Context, batchID string) ([]domain.AssigneeSummary, error) {
	if payload, err := s.cache.GetJSON(ctx, summaryCacheKey(batchID)); err == nil && payload != nil {
		var summaries []domain.AssigneeSummary
		if err := json.Unmarshal(payload, &summaries); err == nil {
			return summaries, nil
		}
	}

	if s.evaluations == nil {
		return nil, apperrors.NewNotFound("batch summary", map[string]any{"batch_id": batchID})
	}
	evaluations, err := s.evaluations.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(evaluations) == 0 {
		return nil, apperrors.NewNotFound("batch summary", map[string]any{"batch_id": batchID})
	}

	summaries := sla.Summarize(evaluations)
	s.cacheSummaries(ctx, batchID, summaries)
	return summaries, nil
}

// GetBatch returns batch metadata.
func (s *ReportService) GetBatch(ctx context.Context, batchID string) (*domain.ReportBatch, error) {
	if s.batches == nil {
		return nil, apperrors.NewNotFound("batch", map[string]any{"batch_id": batchID})
	}
	return s.batches.GetByID(ctx, batchID)
}

// ReevaluateOpenTickets refreshes elapsed hours and breach status for the
// unresolved tickets of the most recent batch against a fresh "now". It
// returns the number of tickets whose status flipped to breached.
func (s *ReportService) ReevaluateOpenTickets(ctx context.Context) (int, error) {
	if s.batches == nil || s.evaluations == nil {
		return 0, nil
	}
	batch, err := s.batches.Latest(ctx)
	if err != nil {
		return 0, err
	}
	open, err := s.evaluations.ListOpenByBatch(ctx, batch.ID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	newBreaches := 0
	for i := range open {
		eval := &open[i]
		ticket := domain.NormalizedTicket{
			ID:            eval.TicketID,
			Assignee:      eval.Assignee,
			Opened:        eval.Opened,
			DeadlineHours: eval.DeadlineHours,
		}
		refreshed := s.classifier.Evaluate(ticket, now)

		breachedNow := refreshed.Status.IsBreach() && !eval.Status.IsBreach()
		eval.ElapsedHours = refreshed.ElapsedHours
		eval.Status = refreshed.Status
		eval.EvaluatedAt = now
		if err := s.evaluations.UpdateResult(ctx, eval); err != nil {
			return newBreaches, err
		}

		if breachedNow {
			newBreaches++
			s.publishEvent(ctx, events.Event{
				Type:    events.EventTicketBreached,
				BatchID: batch.ID,
				Payload: events.TicketBreachedPayload{
					TicketID:      eval.TicketID,
					Assignee:      eval.Assignee,
					Status:        eval.Status,
					ElapsedHours:  eval.ElapsedHours,
					DeadlineHours: eval.DeadlineHours,
				},
			})
		}
	}

	if len(open) > 0 {
		all, err := s.evaluations.ListByBatch(ctx, batch.ID)
		if err != nil {
			return newBreaches, err
		}
		s.cacheSummaries(ctx, batch.ID, sla.Summarize(all))
	}
	return newBreaches, nil
}

func (s *ReportService) cacheSummaries(ctx context.Context, batchID string, summaries []domain.AssigneeSummary) {
	payload, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := s.cache.SetJSON(ctx, summaryCacheKey(batchID), payload, summaryCacheTTL); err != nil {
		s.logger.Warn("summary cache write failed", zap.String("batch_id", batchID), zap.Error(err))
	}
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}

func summaryCacheKey(batchID string) string {
	return "sla:summary:" + batchID
}
