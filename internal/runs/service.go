package runs

import (
	"context"
	"fmt"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Service is the only writer of runs. Every write creates exactly one new version and
// one history row holding the resulting snapshot, inside Store.WithEntityLock.
type Service struct {
	store          Store
	cache          *ListCache
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(store Store, cache *ListCache, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		cache:          cache,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

type versionChange struct {
	next       Snapshot
	changeType ChangeType
	changedBy  string
	reason     string
	deletedAt  *time.Time
}

func (s *Service) UpdateWithHistory(
	ctx context.Context,
	id string,
	patch Patch,
	changedBy, reason string,
) (updated *Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.updateWithHistory")
	span.SetAttributes(attribute.String("run_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if changedBy == "" {
		return nil, apperr.Validation("changed_by", "must be set")
	}

	err = s.store.WithEntityLock(ctx, id, func(ctx context.Context, tx EntityTx, current Entity) error {
		active, ok := current.(Active)
		if !ok {
			return apperr.NotFound("run", id)
		}
		run, err := s.writeVersion(ctx, tx, active, versionChange{
			next:       active.Snapshot.Apply(patch),
			changeType: ChangeEdit,
			changedBy:  changedBy,
			reason:     reason,
		})
		if err != nil {
			return err
		}
		updated = run
		return nil
	})
	if err != nil {
		return nil, s.noteFailure(err)
	}

	s.afterWrite(ChangeEdit)
	log.Infof("updated run %s to version %d by %s", id, updated.Version, changedBy)
	return updated, nil
}

// RestoreToVersion writes a new version whose editable fields are copied from version.
// The restored version itself stays in the history unchanged.
func (s *Service) RestoreToVersion(ctx context.Context, id string, version int, restoredBy string) (_ *Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.restoreToVersion")
	span.SetAttributes(attribute.String("run_id", id), attribute.Int("version", version))
	defer func() { tracing.EndSpan(span, err) }()

	if _, err := s.store.Get(ctx, id, false); err != nil {
		return nil, err
	}
	target, err := s.store.Version(ctx, id, version)
	if err != nil {
		return nil, err
	}

	return s.UpdateWithHistory(ctx, id, PatchFrom(target.Snapshot), restoredBy, fmt.Sprintf("Restored to version %d", version))
}

func (s *Service) SoftDelete(ctx context.Context, id, deletedBy, reason string) (deleted *Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.softDelete")
	span.SetAttributes(attribute.String("run_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if deletedBy == "" {
		return nil, apperr.Validation("deleted_by", "must be set")
	}

	err = s.store.WithEntityLock(ctx, id, func(ctx context.Context, tx EntityTx, current Entity) error {
		active, ok := current.(Active)
		if !ok {
			return apperr.NotFound("run", id)
		}
		deletedAt := s.now().UTC()
		run, err := s.writeVersion(ctx, tx, active, versionChange{
			next:       active.Snapshot,
			changeType: ChangeDeletion,
			changedBy:  deletedBy,
			reason:     reason,
			deletedAt:  &deletedAt,
		})
		if err != nil {
			return err
		}
		deleted = run
		return nil
	})
	if err != nil {
		return nil, s.noteFailure(err)
	}

	s.afterWrite(ChangeDeletion)
	log.Infof("soft deleted run %s at version %d by %s", id, deleted.Version, deletedBy)
	return deleted, nil
}

// Undelete brings a soft-deleted run back as a new edit version.
func (s *Service) Undelete(ctx context.Context, id, restoredBy, reason string) (restored *Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.undelete")
	span.SetAttributes(attribute.String("run_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if restoredBy == "" {
		return nil, apperr.Validation("restored_by", "must be set")
	}
	if reason == "" {
		reason = "Restored deleted run"
	}

	err = s.store.WithEntityLock(ctx, id, func(ctx context.Context, tx EntityTx, current Entity) error {
		deleted, ok := current.(Deleted)
		if !ok {
			return apperr.Validation("", "run %s is not deleted", id)
		}
		run, err := s.writeVersion(ctx, tx, deleted, versionChange{
			next:       deleted.Snapshot,
			changeType: ChangeEdit,
			changedBy:  restoredBy,
			reason:     reason,
		})
		if err != nil {
			return err
		}
		restored = run
		return nil
	})
	if err != nil {
		return nil, s.noteFailure(err)
	}

	s.afterWrite(ChangeEdit)
	return restored, nil
}

func (s *Service) writeVersion(ctx context.Context, tx EntityTx, current Entity, change versionChange) (*Run, error) {
	id := current.RunID()
	newVersion := current.CurrentVersion() + 1
	now := s.now().UTC()

	if err := tx.UpdateLive(ctx, LiveUpdate{
		RunID:           id,
		Snapshot:        change.next,
		ExpectedVersion: current.CurrentVersion(),
		NewVersion:      newVersion,
		EditedBy:        change.changedBy,
		EditedAt:        now,
		DeletedAt:       change.deletedAt,
	}); err != nil {
		return nil, err
	}

	var reason *string
	if change.reason != "" {
		reason = &change.reason
	}
	if err := tx.InsertHistory(ctx, HistoryRecord{
		RunID:         id,
		VersionNumber: newVersion,
		ChangeType:    change.changeType,
		Snapshot:      change.next,
		ChangedAt:     now,
		ChangedBy:     change.changedBy,
		ChangeReason:  reason,
	}); err != nil {
		return nil, err
	}

	changedBy := change.changedBy
	return &Run{
		ID:           id,
		Snapshot:     change.next,
		Version:      newVersion,
		DeletedAt:    change.deletedAt,
		LastEditedAt: &now,
		LastEditedBy: &changedBy,
	}, nil
}

func (s *Service) noteFailure(err error) error {
	if apperr.IsConflict(err) {
		s.metricsManager.CounterHistoryConflicts.Inc()
		log.Warnf("run history conflict: %s", err)
	}
	return err
}

func (s *Service) afterWrite(changeType ChangeType) {
	s.metricsManager.CounterRunEdits.WithLabelValues(string(changeType)).Inc()
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

func (s *Service) Get(ctx context.Context, id string, includeDeleted bool) (*Run, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.get")
	defer span.End()
	return s.store.Get(ctx, id, includeDeleted)
}

// List returns runs ordered by time. Unbounded lists are served from the cache when possible.
func (s *Service) List(ctx context.Context, params ListParams) (_ []Run, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.list")
	defer func() { tracing.EndSpan(span, err) }()

	cacheable := s.cache != nil && params.Start == nil && params.End == nil
	if cacheable {
		if runs, ok := s.cache.Get(params.IncludeDeleted); ok {
			span.SetAttributes(attribute.Bool("cached", true))
			return runs, nil
		}
	}

	var generation uint64
	if cacheable {
		generation = s.cache.Generation()
	}
	runs, err := s.store.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.Set(generation, params.IncludeDeleted, runs)
	}
	return runs, nil
}

// History lists the versions of a run, newest first. A limit of 0 means all of them.
func (s *Service) History(ctx context.Context, id string, limit int) (_ []HistoryRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.history")
	defer func() { tracing.EndSpan(span, err) }()

	if limit < 0 {
		return nil, apperr.Validation("limit", "must not be negative")
	}
	if _, err := s.store.Get(ctx, id, true); err != nil {
		return nil, err
	}
	return s.store.History(ctx, id, limit)
}

func (s *Service) Version(ctx context.Context, id string, version int) (_ *HistoryRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.version")
	defer func() { tracing.EndSpan(span, err) }()

	if _, err := s.store.Get(ctx, id, true); err != nil {
		return nil, err
	}
	return s.store.Version(ctx, id, version)
}

// Import stores newly seen runs with their original history row. Runs already stored are skipped.
func (s *Service) Import(ctx context.Context, runs []Run) (_ ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.runs.import")
	span.SetAttributes(attribute.Int("runs", len(runs)))
	defer func() { tracing.EndSpan(span, err) }()

	normalized := make([]Run, len(runs))
	for i, run := range runs {
		if err := ValidateNew(run); err != nil {
			return ImportResult{}, err
		}
		run.DatetimeUTC = run.DatetimeUTC.UTC()
		normalized[i] = run
	}

	result, err := s.store.BulkCreate(ctx, normalized, DefaultImportChunkSize)
	if err != nil {
		return ImportResult{}, err
	}

	s.metricsManager.CounterRunsImported.WithLabelValues("inserted").Add(float64(result.Inserted))
	s.metricsManager.CounterRunsImported.WithLabelValues("skipped").Add(float64(result.Skipped))
	if result.Inserted > 0 {
		s.metricsManager.CounterRunEdits.WithLabelValues(string(ChangeOriginal)).Add(float64(result.Inserted))
		if s.cache != nil {
			s.cache.Invalidate()
		}
	}
	log.Infof("imported runs: %s", result)
	return result, nil
}
