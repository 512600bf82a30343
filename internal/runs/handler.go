package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/middleware"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"
	"github.com/eswan18/fitness-api-sub000/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=runs_test

type runsService interface {
	List(ctx context.Context, params ListParams) ([]Run, error)
	Get(ctx context.Context, id string, includeDeleted bool) (*Run, error)
	UpdateWithHistory(ctx context.Context, id string, patch Patch, changedBy, reason string) (*Run, error)
	SoftDelete(ctx context.Context, id, deletedBy, reason string) (*Run, error)
	Undelete(ctx context.Context, id, restoredBy, reason string) (*Run, error)
	History(ctx context.Context, id string, limit int) ([]HistoryRecord, error)
	Version(ctx context.Context, id string, version int) (*HistoryRecord, error)
	RestoreToVersion(ctx context.Context, id string, version int, restoredBy string) (*Run, error)
	Import(ctx context.Context, runs []Run) (ImportResult, error)
}

type UpdateResponse struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Run           *Run      `json:"run"`
	UpdatedFields []string  `json:"updated_fields"`
	UpdatedAt     time.Time `json:"updated_at"`
	UpdatedBy     string    `json:"updated_by"`
}

type RestoreResponse struct {
	Status              string    `json:"status"`
	Message             string    `json:"message"`
	Run                 *Run      `json:"run"`
	RestoredFromVersion int       `json:"restored_from_version"`
	RestoredAt          time.Time `json:"restored_at"`
	RestoredBy          string    `json:"restored_by"`
}

type Handler struct {
	service runsService
}

func NewHandler(service runsService) *Handler {
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
	mainRouter.HandleFunc("/runs", handler.HandleList).Methods("GET", "OPTIONS").Name("list-runs")
	mainRouter.HandleFunc("/runs/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-run")
	mainRouter.HandleFunc("/runs/{id}/history", handler.HandleHistory).Methods("GET", "OPTIONS").Name("run-history")
	mainRouter.HandleFunc("/runs/{id}/history/{version}", handler.HandleVersion).Methods("GET", "OPTIONS").Name("run-version")

	writeRouter := mainRouter.PathPrefix("/runs").Methods("POST", "PATCH", "DELETE").Subrouter()
	writeRouter.HandleFunc("/import", handler.HandleImport).Methods("POST").Name("import-runs")
	writeRouter.HandleFunc("/{id}", handler.HandleUpdate).Methods("PATCH").Name("update-run")
	writeRouter.HandleFunc("/{id}", handler.HandleDelete).Methods("DELETE").Name("delete-run")
	writeRouter.HandleFunc("/{id}/undelete", handler.HandleUndelete).Methods("POST").Name("undelete-run")
	writeRouter.HandleFunc("/{id}/restore/{version}", handler.HandleRestore).Methods("POST").Name("restore-run")

	writeRouter.Use(middleware.RateLimit(rateLimiter, "runs-writes", writesAllowedPerMin, metricsManager))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.list")
	defer span.End()

	query := r.URL.Query()
	includeDeleted := query.Get("include_deleted") == "true"

	runs, err := handler.service.List(ctx, ListParams{IncludeDeleted: includeDeleted})
	if err != nil {
		apperr.WriteHTTP(w, "list runs", err)
		return
	}

	startStr, endStr := query.Get("start"), query.Get("end")
	if startStr != "" || endStr != "" {
		start, end := time.Time{}, timezone.Date(9999, time.December, 31)
		if startStr != "" {
			if start, err = timezone.ParseDate(startStr); err != nil {
				apperr.WriteHTTP(w, "list runs", err)
				return
			}
		}
		if endStr != "" {
			if end, err = timezone.ParseDate(endStr); err != nil {
				apperr.WriteHTTP(w, "list runs", err)
				return
			}
		}
		runs, err = timezone.FilterByLocalDateRange(runs, start, end, query.Get("user_timezone"))
		if err != nil {
			apperr.WriteHTTP(w, "list runs", err)
			return
		}
	}
	if runs == nil {
		runs = []Run{}
	}

	pkg.WriteJSON(w, runs, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	run, err := handler.service.Get(ctx, id, r.URL.Query().Get("include_deleted") == "true")
	if err != nil {
		apperr.WriteHTTP(w, "get run "+id, err)
		return
	}

	pkg.WriteJSON(w, run, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.update")
	defer span.End()

	if !isJSON(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("update run, read body: %s", err)
		http.Error(w, "update run failed", http.StatusBadRequest)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Errorf("update run, unmarshal json params: %s", err)
		http.Error(w, "update run failed", http.StatusBadRequest)
		return
	}

	var changedBy, changeReason string
	if err := popString(raw, "changed_by", &changedBy); err != nil {
		http.Error(w, "changed_by must be a string", http.StatusBadRequest)
		return
	}
	if err := popString(raw, "change_reason", &changeReason); err != nil {
		http.Error(w, "change_reason must be a string", http.StatusBadRequest)
		return
	}
	if changedBy == "" {
		http.Error(w, "changed_by is required", http.StatusBadRequest)
		return
	}

	fields, err := json.Marshal(raw)
	if err != nil {
		log.Errorf("update run, marshal fields: %s", err)
		http.Error(w, "update run failed", http.StatusInternalServerError)
		return
	}
	patch, err := DecodePatch(fields)
	if err == nil {
		err = patch.Validate()
	}
	if err != nil {
		apperr.WriteHTTP(w, "update run", err)
		return
	}

	id := mux.Vars(r)["id"]
	updated, err := handler.service.UpdateWithHistory(ctx, id, patch, changedBy, changeReason)
	if err != nil {
		apperr.WriteHTTP(w, "update run "+id, err)
		return
	}

	pkg.WriteJSON(w, UpdateResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Run %s updated successfully", id),
		Run:           updated,
		UpdatedFields: sortedKeys(raw),
		UpdatedAt:     time.Now().UTC(),
		UpdatedBy:     changedBy,
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	deletedBy := r.URL.Query().Get("deleted_by")
	if deletedBy == "" {
		http.Error(w, "deleted_by is required", http.StatusBadRequest)
		return
	}

	deleted, err := handler.service.SoftDelete(ctx, id, deletedBy, r.URL.Query().Get("reason"))
	if err != nil {
		apperr.WriteHTTP(w, "delete run "+id, err)
		return
	}

	pkg.WriteJSON(w, deleted, http.StatusOK)
}

func (handler *Handler) HandleUndelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.undelete")
	defer span.End()

	id := mux.Vars(r)["id"]
	restoredBy := r.URL.Query().Get("restored_by")
	if restoredBy == "" {
		http.Error(w, "restored_by is required", http.StatusBadRequest)
		return
	}

	restored, err := handler.service.Undelete(ctx, id, restoredBy, r.URL.Query().Get("reason"))
	if err != nil {
		apperr.WriteHTTP(w, "undelete run "+id, err)
		return
	}

	pkg.WriteJSON(w, restored, http.StatusOK)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.history")
	defer span.End()

	limit := DefaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = strconv.Atoi(limitStr); err != nil || limit < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	id := mux.Vars(r)["id"]
	history, err := handler.service.History(ctx, id, limit)
	if err != nil {
		apperr.WriteHTTP(w, "run history "+id, err)
		return
	}
	if history == nil {
		history = []HistoryRecord{}
	}

	pkg.WriteJSON(w, history, http.StatusOK)
}

func (handler *Handler) HandleVersion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.version")
	defer span.End()

	vars := mux.Vars(r)
	version, err := strconv.Atoi(vars["version"])
	if err != nil {
		http.Error(w, "error, version NaN", http.StatusBadRequest)
		return
	}

	rec, err := handler.service.Version(ctx, vars["id"], version)
	if err != nil {
		apperr.WriteHTTP(w, "run version "+vars["id"], err)
		return
	}

	pkg.WriteJSON(w, rec, http.StatusOK)
}

func (handler *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.restore")
	defer span.End()

	vars := mux.Vars(r)
	version, err := strconv.Atoi(vars["version"])
	if err != nil {
		http.Error(w, "error, version NaN", http.StatusBadRequest)
		return
	}
	restoredBy := r.URL.Query().Get("restored_by")
	if restoredBy == "" {
		http.Error(w, "restored_by is required", http.StatusBadRequest)
		return
	}

	id := vars["id"]
	restored, err := handler.service.RestoreToVersion(ctx, id, version, restoredBy)
	if err != nil {
		apperr.WriteHTTP(w, "restore run "+id, err)
		return
	}

	log.Infof("restored run %s to version %d by %s", id, version, restoredBy)
	pkg.WriteJSON(w, RestoreResponse{
		Status:              "success",
		Message:             fmt.Sprintf("Run %s restored to version %d", id, version),
		Run:                 restored,
		RestoredFromVersion: version,
		RestoredAt:          time.Now().UTC(),
		RestoredBy:          restoredBy,
	}, http.StatusOK)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.runs.import")
	defer span.End()

	if !isJSON(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var runs []Run
	if err := json.NewDecoder(r.Body).Decode(&runs); err != nil {
		log.Errorf("import runs, unmarshal json params: %s", err)
		http.Error(w, "import runs failed", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Import(ctx, runs)
	if err != nil {
		apperr.WriteHTTP(w, "import runs", err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusCreated)
}

func popString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if string(v) == "null" {
		return nil
	}
	return json.Unmarshal(v, dst)
}

func sortedKeys(m map[string]json.RawMessage) []string {
	ks := keys(m)
	sort.Strings(ks)
	return ks
}

// isJSON accepts application/json with any parameters, e.g. a charset.
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
