package calendarsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const recordColumns = `id, run_id, google_event_id, run_version, sync_status, error_message,
	synced_at, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, runID string) (*Record, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendarsync.get")
	span.SetAttributes(attribute.String("run_id", runID))
	defer span.End()

	rec, err := scanRecord(r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM synced_runs WHERE run_id = $1`, runID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("sync record", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get sync record %s: %w", runID, err)
	}
	return &rec, nil
}

// Upsert writes the record of rec.RunID, replacing an existing one, and returns the stored row.
func (r *Repo) Upsert(ctx context.Context, rec Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendarsync.upsert")
	span.SetAttributes(attribute.String("run_id", rec.RunID), attribute.String("status", string(rec.Status)))
	defer func() { tracing.EndSpan(span, err) }()

	stored, err := scanRecord(r.db.QueryRow(
		ctx,
		`INSERT INTO synced_runs (run_id, google_event_id, run_version, sync_status, error_message, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO UPDATE SET
			google_event_id = EXCLUDED.google_event_id,
			run_version = EXCLUDED.run_version,
			sync_status = EXCLUDED.sync_status,
			error_message = EXCLUDED.error_message,
			synced_at = EXCLUDED.synced_at,
			updated_at = now()
		RETURNING `+recordColumns,
		rec.RunID, rec.GoogleEventID, rec.RunVersion, string(rec.Status), rec.ErrorMessage, rec.SyncedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert sync record %s: %w", rec.RunID, err)
	}
	return &stored, nil
}

func (r *Repo) Delete(ctx context.Context, runID string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendarsync.delete")
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM synced_runs WHERE run_id = $1`, runID)
	if err != nil {
		return fmt.Errorf("delete sync record %s: %w", runID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("sync record", runID)
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Record, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendarsync.list")
	defer span.End()

	return r.query(ctx, `SELECT `+recordColumns+` FROM synced_runs ORDER BY created_at DESC, id DESC`)
}

func (r *Repo) ListByStatus(ctx context.Context, status Status) ([]Record, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.calendarsync.listByStatus")
	span.SetAttributes(attribute.String("status", string(status)))
	defer span.End()

	return r.query(ctx, `SELECT `+recordColumns+` FROM synced_runs WHERE sync_status = $1 ORDER BY updated_at DESC, id DESC`, string(status))
}

func (r *Repo) query(ctx context.Context, sql string, args ...any) ([]Record, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list sync records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sync record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sync records rows: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec    Record
		status string
	)
	if err := row.Scan(
		&rec.ID, &rec.RunID, &rec.GoogleEventID, &rec.RunVersion, &status, &rec.ErrorMessage,
		&rec.SyncedAt, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return Record{}, err
	}
	rec.Status = Status(status)
	return rec, nil
}
