package runs

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=runs_test

// EntityTx is what a locked run exposes to the function passed to WithEntityLock.
// Every write done through it commits or rolls back together.
type EntityTx interface {
	// UpdateLive overwrites the live row only if it is still at expectedVersion.
	UpdateLive(ctx context.Context, change LiveUpdate) error
	InsertHistory(ctx context.Context, record HistoryRecord) error
}

type LiveUpdate struct {
	RunID           string
	Snapshot        Snapshot
	ExpectedVersion int
	NewVersion      int
	EditedBy        string
	EditedAt        time.Time
	DeletedAt       *time.Time
}

// Store persists runs and their append-only history.
type Store interface {
	Create(ctx context.Context, run Run) error
	BulkCreate(ctx context.Context, runs []Run, chunkSize int) (ImportResult, error)
	Get(ctx context.Context, id string, includeDeleted bool) (*Run, error)
	List(ctx context.Context, params ListParams) ([]Run, error)
	// WithEntityLock runs fn in a single transaction holding the run's row lock.
	// A missing run (deleted or not) is a NotFoundError and fn is not called.
	WithEntityLock(ctx context.Context, id string, fn func(ctx context.Context, tx EntityTx, current Entity) error) error
	History(ctx context.Context, id string, limit int) ([]HistoryRecord, error)
	Version(ctx context.Context, id string, version int) (*HistoryRecord, error)
}

func originalRecord(run Run, at time.Time) HistoryRecord {
	reason := InitialImportReason
	return HistoryRecord{
		RunID:         run.ID,
		VersionNumber: 1,
		ChangeType:    ChangeOriginal,
		Snapshot:      run.Snapshot,
		ChangedAt:     at,
		ChangedBy:     SystemUser,
		ChangeReason:  &reason,
	}
}
