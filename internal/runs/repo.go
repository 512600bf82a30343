package runs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"
	"github.com/eswan18/fitness-api-sub000/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const runColumns = `id, datetime_utc, type, distance, duration, source, avg_heart_rate, shoe_id,
	version, deleted_at, last_edited_at, last_edited_by`

const historyColumns = `history_id, run_id, version_number, change_type, datetime_utc, type, distance,
	duration, source, avg_heart_rate, shoe_id, changed_at, changed_by, change_reason`

const insertRunSQL = `
	INSERT INTO runs (id, datetime_utc, type, distance, duration, source, avg_heart_rate, shoe_id, version)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)`

const insertHistorySQL = `
	INSERT INTO runs_history (
		run_id, version_number, change_type, datetime_utc, type, distance, duration,
		source, avg_heart_rate, shoe_id, changed_at, changed_by, change_reason
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// Repo is the Postgres Store.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, run Run) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.create")
	span.SetAttributes(attribute.String("run_id", run.ID))
	defer func() { tracing.EndSpan(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { err = finishTx(ctx, tx, err) }()

	if _, err := tx.Exec(ctx, insertRunSQL, runArgs(run)...); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return apperr.Conflict(err, "run %s already exists", run.ID)
		}
		return fmt.Errorf("insert run: %w", err)
	}
	if _, err := tx.Exec(ctx, insertHistorySQL, historyArgs(originalRecord(run, time.Now().UTC()))...); err != nil {
		return fmt.Errorf("insert original history: %w", err)
	}

	return nil
}

// BulkCreate inserts the runs that do not exist yet, each with its original history row,
// in one transaction sent to the server in chunks.
func (r *Repo) BulkCreate(ctx context.Context, runs []Run, chunkSize int) (_ ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.bulkCreate")
	span.SetAttributes(attribute.Int("runs", len(runs)))
	defer func() { tracing.EndSpan(span, err) }()

	if chunkSize < 1 {
		chunkSize = DefaultImportChunkSize
	}

	var result ImportResult
	if len(runs) == 0 {
		return result, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { err = finishTx(ctx, tx, err) }()

	now := time.Now().UTC()
	for start := 0; start < len(runs); start += chunkSize {
		chunk := runs[start:min(start+chunkSize, len(runs))]

		batch := &pgx.Batch{}
		for _, run := range chunk {
			batch.Queue(insertRunSQL+` ON CONFLICT (id) DO NOTHING`, runArgs(run)...)
		}
		inserted, err := execRunsBatch(ctx, tx, batch, chunk)
		if err != nil {
			return result, fmt.Errorf("insert runs chunk at %d: %w", start, err)
		}
		result.Inserted += len(inserted)
		result.Skipped += len(chunk) - len(inserted)

		if len(inserted) == 0 {
			continue
		}
		historyBatch := &pgx.Batch{}
		for _, run := range inserted {
			historyBatch.Queue(insertHistorySQL, historyArgs(originalRecord(run, now))...)
		}
		if err := tx.SendBatch(ctx, historyBatch).Close(); err != nil {
			return result, fmt.Errorf("insert history chunk at %d: %w", start, err)
		}
	}

	log.Debugf("bulk create runs: %s", result)
	return result, nil
}

func execRunsBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, chunk []Run) (_ []Run, err error) {
	br := tx.SendBatch(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	inserted := make([]Run, 0, len(chunk))
	for _, run := range chunk {
		tag, err := br.Exec()
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		if tag.RowsAffected() == 1 {
			inserted = append(inserted, run)
		}
	}
	return inserted, nil
}

func (r *Repo) Get(ctx context.Context, id string, includeDeleted bool) (*Run, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.get")
	defer span.End()

	run, err := scanRun(r.db.QueryRow(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = $1 AND ($2::boolean OR deleted_at IS NULL)`,
		id, includeDeleted,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("run", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) ([]Run, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.list")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+runColumns+` FROM runs
			WHERE ($1::boolean OR deleted_at IS NULL)
			AND ($2::timestamptz IS NULL OR datetime_utc >= $2)
			AND ($3::timestamptz IS NULL OR datetime_utc <= $3)
			ORDER BY datetime_utc, id`,
		params.IncludeDeleted, params.Start, params.End,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs rows: %w", err)
	}
	return runs, nil
}

func (r *Repo) WithEntityLock(
	ctx context.Context,
	id string,
	fn func(ctx context.Context, tx EntityTx, current Entity) error,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.withEntityLock")
	span.SetAttributes(attribute.String("run_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { err = finishTx(ctx, tx, err) }()

	run, err := scanRun(tx.QueryRow(ctx, `SELECT `+runColumns+` FROM runs WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("run", id)
	}
	if err != nil {
		return fmt.Errorf("lock run %s: %w", id, err)
	}

	return fn(ctx, &pgxEntityTx{tx: tx}, EntityOf(run))
}

func (r *Repo) History(ctx context.Context, id string, limit int) ([]HistoryRecord, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.history")
	defer span.End()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+historyColumns+` FROM runs_history
			WHERE run_id = $1
			ORDER BY version_number DESC
			LIMIT NULLIF($2::int, 0)`,
		id, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("run %s history: %w", id, err)
	}
	defer rows.Close()

	var history []HistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run %s history rows: %w", id, err)
	}
	return history, nil
}

func (r *Repo) Version(ctx context.Context, id string, version int) (*HistoryRecord, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.runs.version")
	defer span.End()

	rec, err := scanHistory(r.db.QueryRow(
		ctx,
		`SELECT `+historyColumns+` FROM runs_history WHERE run_id = $1 AND version_number = $2`,
		id, version,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("run version", fmt.Sprintf("%s@%d", id, version))
	}
	if err != nil {
		return nil, fmt.Errorf("run %s version %d: %w", id, version, err)
	}
	return &rec, nil
}

type pgxEntityTx struct {
	tx pgx.Tx
}

func (t *pgxEntityTx) UpdateLive(ctx context.Context, change LiveUpdate) error {
	s := change.Snapshot
	tag, err := t.tx.Exec(
		ctx,
		`UPDATE runs SET
			datetime_utc = $3, type = $4, distance = $5, duration = $6,
			avg_heart_rate = $7, shoe_id = $8, deleted_at = $9,
			version = $10, last_edited_at = $11, last_edited_by = $12
		WHERE id = $1 AND version = $2`,
		change.RunID, change.ExpectedVersion,
		s.DatetimeUTC, s.Type, s.Distance, s.Duration, s.AvgHeartRate, s.ShoeID, change.DeletedAt,
		change.NewVersion, change.EditedAt, change.EditedBy,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", change.RunID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("run", change.RunID)
	}
	return nil
}

func (t *pgxEntityTx) InsertHistory(ctx context.Context, record HistoryRecord) error {
	if _, err := t.tx.Exec(ctx, insertHistorySQL, historyArgs(record)...); err != nil {
		if pkg.IsUniqueViolationError(err) || pkg.IsSerializationFailure(err) {
			return apperr.Conflict(err, "run %s version %d", record.RunID, record.VersionNumber)
		}
		return fmt.Errorf("insert history %s@%d: %w", record.RunID, record.VersionNumber, err)
	}
	return nil
}

// finishTx commits when err is nil and rolls back otherwise. Serialization failures on commit
// become conflicts.
func finishTx(ctx context.Context, tx pgx.Tx, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			log.Errorf("rollback: %s", rollbackErr)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if pkg.IsSerializationFailure(err) {
			return apperr.Conflict(err, "commit")
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func runArgs(run Run) []any {
	return []any{
		run.ID, run.DatetimeUTC.UTC(), run.Type, run.Distance, run.Duration,
		run.Source, run.AvgHeartRate, run.ShoeID,
	}
}

func historyArgs(rec HistoryRecord) []any {
	s := rec.Snapshot
	return []any{
		rec.RunID, rec.VersionNumber, string(rec.ChangeType), s.DatetimeUTC.UTC(), s.Type, s.Distance,
		s.Duration, s.Source, s.AvgHeartRate, s.ShoeID, rec.ChangedAt, rec.ChangedBy, rec.ChangeReason,
	}
}

func scanRun(row pgx.Row) (Run, error) {
	var run Run
	if err := row.Scan(
		&run.ID, &run.DatetimeUTC, &run.Type, &run.Distance, &run.Duration, &run.Source,
		&run.AvgHeartRate, &run.ShoeID, &run.Version, &run.DeletedAt, &run.LastEditedAt, &run.LastEditedBy,
	); err != nil {
		return Run{}, err
	}
	run.DatetimeUTC = run.DatetimeUTC.UTC()
	return run, nil
}

func scanHistory(row pgx.Row) (HistoryRecord, error) {
	var (
		rec        HistoryRecord
		changeType string
	)
	if err := row.Scan(
		&rec.HistoryID, &rec.RunID, &rec.VersionNumber, &changeType, &rec.DatetimeUTC, &rec.Type,
		&rec.Distance, &rec.Duration, &rec.Source, &rec.AvgHeartRate, &rec.ShoeID,
		&rec.ChangedAt, &rec.ChangedBy, &rec.ChangeReason,
	); err != nil {
		return HistoryRecord{}, err
	}
	rec.ChangeType = ChangeType(changeType)
	rec.DatetimeUTC = rec.DatetimeUTC.UTC()
	return rec, nil
}
