package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// EvaluationRepository encapsulates per-ticket SLA evaluation persistence.
type EvaluationRepository interface {
	CreateAll(ctx context.Context, evaluations []domain.SlaEvaluation) error
	ListByBatch(ctx context.Context, batchID string) ([]domain.SlaEvaluation, error)
	ListOpenByBatch(ctx context.Context, batchID string) ([]domain.SlaEvaluation, error)
	UpdateResult(ctx context.Context, evaluation *domain.SlaEvaluation) error
}

type evaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository instantiates repository.
func NewEvaluationRepository(pool *pgxpool.Pool) EvaluationRepository {
	return &evaluationRepository{pool: pool}
}

func (r *evaluationRepository) CreateAll(ctx context.Context, evaluations []domain.SlaEvaluation) error {
	batch := &pgx.Batch{}
	const query = `
        INSERT INTO sla_evaluations (id, batch_id, ticket_id, assignee, opened_at, resolved,
            elapsed_hours, deadline_hours, status, evaluated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	for _, eval := range evaluations {
		batch.Queue(query,
			eval.ID,
			eval.BatchID,
			eval.TicketID,
			eval.Assignee,
			eval.Opened,
			eval.Resolved,
			eval.ElapsedHours,
			eval.DeadlineHours,
			eval.Status,
			eval.EvaluatedAt,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range evaluations {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *evaluationRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.SlaEvaluation, error) {
	const query = `
        SELECT id, batch_id, ticket_id, assignee, opened_at, resolved,
               elapsed_hours, deadline_hours, status, evaluated_at
        FROM sla_evaluations WHERE batch_id=$1 ORDER BY ticket_id`
	return r.fetchMany(ctx, query, batchID)
}

func (r *evaluationRepository) ListOpenByBatch(ctx context.Context, batchID string) ([]domain.SlaEvaluation, error) {
	const query = `
        SELECT id, batch_id, ticket_id, assignee, opened_at, resolved,
               elapsed_hours, deadline_hours, status, evaluated_at
        FROM sla_evaluations
        WHERE batch_id=$1 AND resolved=false AND opened_at IS NOT NULL
        ORDER BY ticket_id`
	return r.fetchMany(ctx, query, batchID)
}

func (r *evaluationRepository) UpdateResult(ctx context.Context, evaluation *domain.SlaEvaluation) error {
	const query = `
        UPDATE sla_evaluations SET elapsed_hours=$1, status=$2, evaluated_at=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		evaluation.ElapsedHours,
		evaluation.Status,
		evaluation.EvaluatedAt,
		evaluation.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *evaluationRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.SlaEvaluation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SlaEvaluation
	for rows.Next() {
		var eval domain.SlaEvaluation
		if err := rows.Scan(
			&eval.ID,
			&eval.BatchID,
			&eval.TicketID,
			&eval.Assignee,
			&eval.Opened,
			&eval.Resolved,
			&eval.ElapsedHours,
			&eval.DeadlineHours,
			&eval.Status,
			&eval.EvaluatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, eval)
	}
	return result, rows.Err()
}
