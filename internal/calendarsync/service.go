package calendarsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const lockKeyPrefix = "calendarsync::lock::"

// releaseLockScript deletes the lock only while it still holds our token, so a lock that
// expired and was taken by someone else is left alone.
const releaseLockScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=calendarsync

type recordStore interface {
	Get(ctx context.Context, runID string) (*Record, error)
	Upsert(ctx context.Context, rec Record) (*Record, error)
	Delete(ctx context.Context, runID string) error
	List(ctx context.Context) ([]Record, error)
	ListByStatus(ctx context.Context, status Status) ([]Record, error)
}

type runGetter interface {
	Get(ctx context.Context, id string, includeDeleted bool) (*runs.Run, error)
}

type Service struct {
	records        recordStore
	runs           runGetter
	calendar       Calendar
	redisClient    *redis.Client
	lockTTL        time.Duration
	metricsManager *metrics.Manager
	now            func() time.Time
	newLockToken   func() string
}

func NewService(
	records recordStore,
	runs runGetter,
	calendar Calendar,
	redisClient *redis.Client,
	lockTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		records:        records,
		runs:           runs,
		calendar:       calendar,
		redisClient:    redisClient,
		lockTTL:        lockTTL,
		metricsManager: metricsManager,
		now:            time.Now,
		newLockToken:   uuid.NewString,
	}
}

// Sync creates the calendar event of a run. A run already synced is left alone. A failed event
// creation is recorded and reported in the Result.
func (s *Service) Sync(ctx context.Context, runID string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calendarsync.sync")
	span.SetAttributes(attribute.String("run_id", runID))
	defer func() { tracing.EndSpan(span, err) }()

	unlock, err := s.lock(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.existing(ctx, runID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == StatusSynced {
		s.outcome("sync", "already_synced")
		return &Result{
			Success:       false,
			Message:       fmt.Sprintf("Run %s is already synced to Google Calendar", runID),
			GoogleEventID: nonEmpty(existing.GoogleEventID),
			SyncStatus:    existing.Status,
			SyncedAt:      existing.SyncedAt,
		}, nil
	}

	run, err := s.runs.Get(ctx, runID, false)
	if err != nil {
		return nil, err
	}

	eventID, createErr := s.calendar.CreateEvent(ctx, *run)
	if createErr != nil {
		return s.recordFailure(ctx, run, existing, createErr)
	}

	now := s.now().UTC()
	stored, err := s.records.Upsert(ctx, Record{
		RunID:         runID,
		GoogleEventID: eventID,
		RunVersion:    run.Version,
		Status:        StatusSynced,
		SyncedAt:      &now,
	})
	if err != nil {
		log.Errorf("calendar event %s created for run %s but its sync record was not stored: %s", eventID, runID, err)
		return nil, err
	}

	s.outcome("sync", "synced")
	log.Infof("synced run %s (version %d) to calendar event %s", runID, run.Version, eventID)
	return &Result{
		Success:       true,
		Message:       fmt.Sprintf("Successfully synced run %s to Google Calendar", runID),
		GoogleEventID: nonEmpty(stored.GoogleEventID),
		SyncStatus:    stored.Status,
		SyncedAt:      stored.SyncedAt,
	}, nil
}

func (s *Service) recordFailure(ctx context.Context, run *runs.Run, existing *Record, cause error) (*Result, error) {
	msg := fmt.Sprintf("Failed to sync run %s: %s", run.ID, cause)
	log.Errorf("sync run %s: %s", run.ID, cause)

	failed := Record{
		RunID:        run.ID,
		RunVersion:   run.Version,
		Status:       StatusFailed,
		ErrorMessage: &msg,
	}
	if existing != nil {
		failed.GoogleEventID = existing.GoogleEventID
	}
	if _, err := s.records.Upsert(ctx, failed); err != nil {
		log.Errorf("store failed sync record for run %s: %s", run.ID, err)
	}

	s.outcome("sync", "failed")
	return &Result{
		Success:    false,
		Message:    msg,
		SyncStatus: StatusFailed,
	}, nil
}

// Unsync removes the calendar event of a run and then its record. When there is no event to
// remove only the record goes. If the event cannot be deleted the record is kept.
func (s *Service) Unsync(ctx context.Context, runID string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calendarsync.unsync")
	span.SetAttributes(attribute.String("run_id", runID))
	defer func() { tracing.EndSpan(span, err) }()

	unlock, err := s.lock(ctx, runID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	rec, err := s.existing(ctx, runID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound("synced run", runID)
	}

	if rec.GoogleEventID == "" || rec.Status != StatusSynced {
		if err := s.records.Delete(ctx, runID); err != nil {
			return nil, err
		}
		s.outcome("unsync", "record_removed")
		return &Result{
			Success:    true,
			Message:    fmt.Sprintf("Removed sync record for run %s", runID),
			SyncStatus: StatusFailed,
		}, nil
	}

	if err := s.calendar.DeleteEvent(ctx, rec.GoogleEventID); err != nil {
		log.Errorf("unsync run %s, event %s: %s", runID, rec.GoogleEventID, err)
		s.outcome("unsync", "failed")
		return &Result{
			Success:       false,
			Message:       fmt.Sprintf("Failed to unsync run %s: %s", runID, err),
			GoogleEventID: nonEmpty(rec.GoogleEventID),
			SyncStatus:    rec.Status,
			SyncedAt:      rec.SyncedAt,
		}, nil
	}

	if err := s.records.Delete(ctx, runID); err != nil {
		return nil, err
	}

	s.outcome("unsync", "unsynced")
	log.Infof("unsynced run %s, removed calendar event %s", runID, rec.GoogleEventID)
	return &Result{
		Success:       true,
		Message:       fmt.Sprintf("Successfully removed sync for run %s", runID),
		GoogleEventID: nonEmpty(rec.GoogleEventID),
		SyncStatus:    StatusFailed,
	}, nil
}

func (s *Service) Status(ctx context.Context, runID string) (StatusResult, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calendarsync.status")
	defer span.End()

	rec, err := s.existing(ctx, runID)
	if err != nil {
		return StatusResult{}, err
	}
	return statusOf(runID, rec), nil
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calendarsync.list")
	defer span.End()
	return s.records.List(ctx)
}

func (s *Service) ListFailed(ctx context.Context) ([]Record, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.calendarsync.listFailed")
	defer span.End()
	return s.records.ListByStatus(ctx, StatusFailed)
}

// existing returns the record of runID, nil when there is none.
func (s *Service) existing(ctx context.Context, runID string) (*Record, error) {
	rec, err := s.records.Get(ctx, runID)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	return rec, err
}

// lock takes the per-run sync lock. Holding it is what keeps two concurrent syncs of the same
// run from creating two events.
func (s *Service) lock(ctx context.Context, runID string) (func(), error) {
	key := lockKeyPrefix + runID
	token := s.newLockToken()

	acquired, err := s.redisClient.SetNX(ctx, key, token, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock for run %s: %w", runID, err)
	}
	if !acquired {
		s.outcome("lock", "contended")
		return nil, apperr.Conflict(nil, "a sync of run %s is already in progress", runID)
	}

	return func() {
		// the request context may be done by now
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := s.redisClient.Eval(releaseCtx, releaseLockScript, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Warnf("release sync lock %s: %s", key, err)
		}
	}, nil
}

func (s *Service) outcome(op, result string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterSyncOutcomes.WithLabelValues(op, result).Inc()
	}
}
