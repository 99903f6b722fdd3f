package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// BatchRepository encapsulates report batch persistence.
type BatchRepository interface {
	Create(ctx context.Context, batch *domain.ReportBatch) error
	GetByID(ctx context.Context, id string) (*domain.ReportBatch, error)
	Latest(ctx context.Context) (*domain.ReportBatch, error)
}

type batchRepository struct {
	pool *pgxpool.Pool
}

// NewBatchRepository instantiates repository.
func NewBatchRepository(pool *pgxpool.Pool) BatchRepository {
	return &batchRepository{pool: pool}
}

func (r *batchRepository) Create(ctx context.Context, batch *domain.ReportBatch) error {
	const query = `
        INSERT INTO report_batches (id, source, row_count, degraded_rows)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		batch.ID,
		batch.Source,
		batch.RowCount,
		batch.DegradedRows,
	).Scan(&batch.CreatedAt, &batch.UpdatedAt)
}

func (r *batchRepository) GetByID(ctx context.Context, id string) (*domain.ReportBatch, error) {
	const query = `
        SELECT id, source, row_count, degraded_rows, created_at, updated_at
        FROM report_batches WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *batchRepository) Latest(ctx context.Context) (*domain.ReportBatch, error) {
	const query = `
        SELECT id, source, row_count, degraded_rows, created_at, updated_at
        FROM report_batches ORDER BY created_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query)
}

func (r *batchRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.ReportBatch, error) {
	var batch domain.ReportBatch
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&batch.ID,
		&batch.Source,
		&batch.RowCount,
		&batch.DegradedRows,
		&batch.CreatedAt,
		&batch.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &batch, nil
}
