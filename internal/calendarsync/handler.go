package calendarsync

import (
	"context"
	"net/http"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/middleware"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"
	"github.com/eswan18/fitness-api-sub000/pkg"

	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=calendarsync

type syncService interface {
	Sync(ctx context.Context, runID string) (*Result, error)
	Unsync(ctx context.Context, runID string) (*Result, error)
	Status(ctx context.Context, runID string) (StatusResult, error)
	List(ctx context.Context) ([]Record, error)
	ListFailed(ctx context.Context) ([]Record, error)
}

type Handler struct {
	service syncService
}

func NewHandler(service syncService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	writesAllowedPerMin int,
) {
	syncRouter := mainRouter.PathPrefix("/sync/runs").Subrouter()
	// registered before /{id} so "failed" is not taken for a run id
	syncRouter.HandleFunc("/failed", handler.HandleListFailed).Methods("GET", "OPTIONS").Name("sync-list-failed")
	syncRouter.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("sync-list")
	syncRouter.HandleFunc("/{id}", handler.HandleStatus).Methods("GET", "OPTIONS").Name("sync-status")
	syncRouter.HandleFunc("/{id}/status", handler.HandleStatus).Methods("GET", "OPTIONS").Name("sync-status-legacy")

	writeRouter := mainRouter.PathPrefix("/sync/runs").Methods("POST", "DELETE").Subrouter()
	writeRouter.HandleFunc("/{id}", handler.HandleSync).Methods("POST").Name("sync-run")
	writeRouter.HandleFunc("/{id}", handler.HandleUnsync).Methods("DELETE").Name("unsync-run")
	writeRouter.Use(middleware.RateLimit(rateLimiter, "calendar-sync", writesAllowedPerMin, metricsManager))
}

func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendarsync.sync")
	defer span.End()

	id := mux.Vars(r)["id"]
	result, err := handler.service.Sync(ctx, id)
	if err != nil {
		apperr.WriteHTTP(w, "sync run "+id, err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleUnsync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendarsync.unsync")
	defer span.End()

	id := mux.Vars(r)["id"]
	result, err := handler.service.Unsync(ctx, id)
	if err != nil {
		apperr.WriteHTTP(w, "unsync run "+id, err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendarsync.status")
	defer span.End()

	id := mux.Vars(r)["id"]
	status, err := handler.service.Status(ctx, id)
	if err != nil {
		apperr.WriteHTTP(w, "sync status "+id, err)
		return
	}

	pkg.WriteJSON(w, status, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendarsync.list")
	defer span.End()

	records, err := handler.service.List(ctx)
	if err != nil {
		apperr.WriteHTTP(w, "list sync records", err)
		return
	}
	writeRecords(w, records)
}

func (handler *Handler) HandleListFailed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendarsync.listFailed")
	defer span.End()

	records, err := handler.service.ListFailed(ctx)
	if err != nil {
		apperr.WriteHTTP(w, "list failed sync records", err)
		return
	}
	writeRecords(w, records)
}

func writeRecords(w http.ResponseWriter, records []Record) {
	if records == nil {
		records = []Record{}
	}
	pkg.WriteJSON(w, records, http.StatusOK)
}
