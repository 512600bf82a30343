package runs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
)

// MemoryRepo is an in-process Store. WithEntityLock serializes on a single mutex and only
// applies the writes of fn when it returns nil.
type MemoryRepo struct {
	mu            sync.Mutex
	runs          map[string]Run
	history       map[string][]HistoryRecord
	nextHistoryID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		runs:    make(map[string]Run),
		history: make(map[string][]HistoryRecord),
	}
}

func (r *MemoryRepo) Create(_ context.Context, run Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runs[run.ID]; ok {
		return apperr.Conflict(nil, "run %s already exists", run.ID)
	}
	r.insertLocked(run, time.Now().UTC())
	return nil
}

func (r *MemoryRepo) BulkCreate(_ context.Context, runs []Run, _ int) (ImportResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result ImportResult
	now := time.Now().UTC()
	for _, run := range runs {
		if _, ok := r.runs[run.ID]; ok {
			result.Skipped++
			continue
		}
		r.insertLocked(run, now)
		result.Inserted++
	}
	return result, nil
}

func (r *MemoryRepo) insertLocked(run Run, at time.Time) {
	run.Version = 1
	run.DeletedAt = nil
	run.LastEditedAt = nil
	run.LastEditedBy = nil
	r.runs[run.ID] = run
	r.appendHistoryLocked(originalRecord(run, at))
}

func (r *MemoryRepo) appendHistoryLocked(rec HistoryRecord) {
	r.nextHistoryID++
	rec.HistoryID = r.nextHistoryID
	r.history[rec.RunID] = append(r.history[rec.RunID], rec)
}

func (r *MemoryRepo) Get(_ context.Context, id string, includeDeleted bool) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok || (run.DeletedAt != nil && !includeDeleted) {
		return nil, apperr.NotFound("run", id)
	}
	return &run, nil
}

func (r *MemoryRepo) List(_ context.Context, params ListParams) ([]Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var runs []Run
	for _, run := range r.runs {
		if run.DeletedAt != nil && !params.IncludeDeleted {
			continue
		}
		if params.Start != nil && run.DatetimeUTC.Before(*params.Start) {
			continue
		}
		if params.End != nil && run.DatetimeUTC.After(*params.End) {
			continue
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].DatetimeUTC.Equal(runs[j].DatetimeUTC) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].DatetimeUTC.Before(runs[j].DatetimeUTC)
	})
	return runs, nil
}

func (r *MemoryRepo) WithEntityLock(
	ctx context.Context,
	id string,
	fn func(ctx context.Context, tx EntityTx, current Entity) error,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return apperr.NotFound("run", id)
	}

	tx := &memoryTx{repo: r}
	if err := fn(ctx, tx, EntityOf(run)); err != nil {
		return err
	}

	for _, change := range tx.updates {
		live := r.runs[change.RunID]
		live.Snapshot = change.Snapshot
		live.Version = change.NewVersion
		live.DeletedAt = change.DeletedAt
		editedAt, editedBy := change.EditedAt, change.EditedBy
		live.LastEditedAt = &editedAt
		live.LastEditedBy = &editedBy
		r.runs[change.RunID] = live
	}
	for _, rec := range tx.history {
		r.appendHistoryLocked(rec)
	}
	return nil
}

func (r *MemoryRepo) History(_ context.Context, id string, limit int) ([]HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := append([]HistoryRecord(nil), r.history[id]...)
	sort.Slice(history, func(i, j int) bool {
		return history[i].VersionNumber > history[j].VersionNumber
	})
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

func (r *MemoryRepo) Version(_ context.Context, id string, version int) (*HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.history[id] {
		if rec.VersionNumber == version {
			return &rec, nil
		}
	}
	return nil, apperr.NotFound("run version", fmt.Sprintf("%s@%d", id, version))
}

// memoryTx buffers writes until WithEntityLock decides to apply them. It is only used while
// the repo mutex is held.
type memoryTx struct {
	repo    *MemoryRepo
	updates []LiveUpdate
	history []HistoryRecord
}

func (t *memoryTx) UpdateLive(_ context.Context, change LiveUpdate) error {
	version := t.repo.runs[change.RunID].Version
	for _, pending := range t.updates {
		if pending.RunID == change.RunID {
			version = pending.NewVersion
		}
	}
	if _, ok := t.repo.runs[change.RunID]; !ok || version != change.ExpectedVersion {
		return apperr.NotFound("run", change.RunID)
	}
	t.updates = append(t.updates, change)
	return nil
}

func (t *memoryTx) InsertHistory(_ context.Context, record HistoryRecord) error {
	taken := func(recs []HistoryRecord) bool {
		for _, rec := range recs {
			if rec.RunID == record.RunID && rec.VersionNumber == record.VersionNumber {
				return true
			}
		}
		return false
	}
	if taken(t.repo.history[record.RunID]) || taken(t.history) {
		return apperr.Conflict(nil, "run %s version %d", record.RunID, record.VersionNumber)
	}
	t.history = append(t.history, record)
	return nil
}
