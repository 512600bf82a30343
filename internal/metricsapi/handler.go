// Package metricsapi serves mileage, duration and training load figures computed over
// all non-deleted runs.
package metricsapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/agg"
	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/shoes"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"
	"github.com/eswan18/fitness-api-sub000/internal/trainingload"
	"github.com/eswan18/fitness-api-sub000/pkg"

	"github.com/gorilla/mux"
)

var defaultStart = timezone.Date(2016, time.January, 1)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=metricsapi_test

type runLister interface {
	List(ctx context.Context, params runs.ListParams) ([]runs.Run, error)
}

type shoeLister interface {
	List(ctx context.Context) ([]shoes.Shoe, error)
}

type DayMileage struct {
	Date    string  `json:"date"`
	Mileage float64 `json:"mileage"`
}

type DayTrimp struct {
	Date  string  `json:"date"`
	Trimp float64 `json:"trimp"`
}

type DayTrainingLoad struct {
	Date         string            `json:"date"`
	TrainingLoad trainingload.Load `json:"training_load"`
}

type Handler struct {
	runs           runLister
	shoes          shoeLister
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(runs runLister, shoes shoeLister, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		runs:           runs,
		shoes:          shoes,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	metricsRouter := mainRouter.PathPrefix("/metrics").Subrouter()
	metricsRouter.HandleFunc("/seconds/total", handler.HandleTotalSeconds).Methods("GET", "OPTIONS").Name("total-seconds")
	metricsRouter.HandleFunc("/mileage/total", handler.HandleTotalMileage).Methods("GET", "OPTIONS").Name("total-mileage")
	metricsRouter.HandleFunc("/mileage/avg-per-day", handler.HandleAvgMileagePerDay).Methods("GET", "OPTIONS").Name("avg-mileage")
	metricsRouter.HandleFunc("/mileage/by-day", handler.HandleMileageByDay).Methods("GET", "OPTIONS").Name("mileage-by-day")
	metricsRouter.HandleFunc("/mileage/rolling-by-day", handler.HandleRollingMileage).Methods("GET", "OPTIONS").Name("rolling-mileage")
	metricsRouter.HandleFunc("/mileage/by-shoe", handler.HandleMileageByShoe).Methods("GET", "OPTIONS").Name("mileage-by-shoe")
	metricsRouter.HandleFunc("/training-load/by-day", handler.HandleTrainingLoad).Methods("GET", "OPTIONS").Name("training-load")
	metricsRouter.HandleFunc("/trimp/by-day", handler.HandleTrimpByDay).Methods("GET", "OPTIONS").Name("trimp-by-day")

	mainRouter.HandleFunc("/summary/trmnl", handler.HandleSummary).Methods("GET", "OPTIONS").Name("summary")
}

// rangeQuery is the date range and timezone shared by every metrics endpoint.
type rangeQuery struct {
	start, end time.Time
	tz         string
}

func (handler *Handler) parseRange(query url.Values, required bool) (rangeQuery, error) {
	tz := query.Get("user_timezone")
	loc, err := timezone.LoadLocation(tz)
	if err != nil {
		return rangeQuery{}, err
	}

	q := rangeQuery{
		start: defaultStart,
		end:   timezone.LocalDate(handler.now(), loc),
		tz:    tz,
	}
	if q.start, err = dateParam(query, "start", q.start, required); err != nil {
		return rangeQuery{}, err
	}
	if q.end, err = dateParam(query, "end", q.end, required); err != nil {
		return rangeQuery{}, err
	}
	if err := timezone.CheckRange(q.start, q.end); err != nil {
		return rangeQuery{}, err
	}
	return q, nil
}

func dateParam(query url.Values, name string, fallback time.Time, required bool) (time.Time, error) {
	raw := query.Get(name)
	if raw == "" {
		if required {
			return time.Time{}, apperr.Validation(name, "is required")
		}
		return fallback, nil
	}
	return timezone.ParseDate(raw)
}

func floatParam(query url.Values, name string, fallback *float64) (float64, error) {
	raw := query.Get(name)
	if raw == "" {
		if fallback == nil {
			return 0, apperr.Validation(name, "is required")
		}
		return *fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperr.Validation(name, "not a number: %q", raw)
	}
	return v, nil
}

func athleteParams(query url.Values, defaults *trainingload.Params) (trainingload.Params, error) {
	var maxFallback, restFallback *float64
	sexRaw := query.Get("sex")
	if defaults != nil {
		maxFallback, restFallback = &defaults.MaxHR, &defaults.RestingHR
		if sexRaw == "" {
			sexRaw = string(defaults.Sex)
		}
	}

	maxHR, err := floatParam(query, "max_hr", maxFallback)
	if err != nil {
		return trainingload.Params{}, err
	}
	restingHR, err := floatParam(query, "resting_hr", restFallback)
	if err != nil {
		return trainingload.Params{}, err
	}
	if sexRaw == "" {
		return trainingload.Params{}, apperr.Validation("sex", "is required")
	}
	sex, err := trainingload.ParseSex(sexRaw)
	if err != nil {
		return trainingload.Params{}, err
	}
	return trainingload.Params{MaxHR: maxHR, RestingHR: restingHR, Sex: sex}, nil
}

// allRuns is every non-deleted run; the runs service serves it from its list cache.
func (handler *Handler) allRuns(ctx context.Context) ([]runs.Run, error) {
	return handler.runs.List(ctx, runs.ListParams{})
}

func (handler *Handler) observe(metric string, begin time.Time) {
	if handler.metricsManager != nil {
		handler.metricsManager.HistogramComputationDuration.WithLabelValues(metric).Observe(time.Since(begin).Seconds())
	}
}

// compute runs fn over all runs and writes its result, or the error it failed with.
func (handler *Handler) compute(
	w http.ResponseWriter,
	r *http.Request,
	metric string,
	fn func(rs []runs.Run) (any, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.metrics."+metric)
	defer span.End()

	rs, err := handler.allRuns(ctx)
	if err != nil {
		apperr.WriteHTTP(w, "metrics "+metric+", list runs", err)
		return
	}

	begin := time.Now()
	result, err := fn(rs)
	handler.observe(metric, begin)
	if err != nil {
		apperr.WriteHTTP(w, "metrics "+metric, err)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleTotalSeconds(w http.ResponseWriter, r *http.Request) {
	q, err := handler.parseRange(r.URL.Query(), false)
	if err != nil {
		apperr.WriteHTTP(w, "metrics total seconds", err)
		return
	}
	handler.compute(w, r, "total_seconds", func(rs []runs.Run) (any, error) {
		return agg.TotalSeconds(rs, q.start, q.end, q.tz)
	})
}

func (handler *Handler) HandleTotalMileage(w http.ResponseWriter, r *http.Request) {
	q, err := handler.parseRange(r.URL.Query(), false)
	if err != nil {
		apperr.WriteHTTP(w, "metrics total mileage", err)
		return
	}
	handler.compute(w, r, "total_mileage", func(rs []runs.Run) (any, error) {
		return agg.TotalMileage(rs, q.start, q.end, q.tz)
	})
}

func (handler *Handler) HandleAvgMileagePerDay(w http.ResponseWriter, r *http.Request) {
	q, err := handler.parseRange(r.URL.Query(), false)
	if err != nil {
		apperr.WriteHTTP(w, "metrics avg mileage", err)
		return
	}
	handler.compute(w, r, "avg_mileage_per_day", func(rs []runs.Run) (any, error) {
		return agg.AvgMilesPerDay(rs, q.start, q.end, q.tz)
	})
}

func (handler *Handler) HandleMileageByDay(w http.ResponseWriter, r *http.Request) {
	q, err := handler.parseRange(r.URL.Query(), false)
	if err != nil {
		apperr.WriteHTTP(w, "metrics mileage by day", err)
		return
	}
	handler.compute(w, r, "mileage_by_day", func(rs []runs.Run) (any, error) {
		days, err := agg.MilesByDay(rs, q.start, q.end, q.tz)
		return dayMileage(days), err
	})
}

func (handler *Handler) HandleRollingMileage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, err := handler.parseRange(query, false)
	if err != nil {
		apperr.WriteHTTP(w, "metrics rolling mileage", err)
		return
	}
	window := 1
	if raw := query.Get("window"); raw != "" {
		if window, err = strconv.Atoi(raw); err != nil {
			http.Error(w, "window must be an integer", http.StatusBadRequest)
			return
		}
	}
	if err := agg.CheckWindow(window); err != nil {
		apperr.WriteHTTP(w, "metrics rolling mileage", err)
		return
	}

	handler.compute(w, r, "rolling_mileage", func(rs []runs.Run) (any, error) {
		days, err := agg.RollingMileage(rs, q.start, q.end, window, q.tz)
		return dayMileage(days), err
	})
}

func (handler *Handler) HandleMileageByShoe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.metrics.mileage_by_shoe")
	defer span.End()

	includeRetired := false
	if raw := r.URL.Query().Get("include_retired"); raw != "" {
		var err error
		if includeRetired, err = strconv.ParseBool(raw); err != nil {
			http.Error(w, "include_retired must be a boolean", http.StatusBadRequest)
			return
		}
	}

	allShoes, err := handler.shoes.List(ctx)
	if err != nil {
		apperr.WriteHTTP(w, "metrics mileage by shoe, list shoes", err)
		return
	}

	handler.compute(w, r.WithContext(ctx), "mileage_by_shoe", func(rs []runs.Run) (any, error) {
		return agg.MileageByShoes(rs, allShoes, includeRetired), nil
	})
}

func (handler *Handler) HandleTrainingLoad(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, err := handler.parseRange(query, true)
	if err != nil {
		apperr.WriteHTTP(w, "metrics training load", err)
		return
	}
	params, err := athleteParams(query, nil)
	if err != nil {
		apperr.WriteHTTP(w, "metrics training load", err)
		return
	}

	handler.compute(w, r, "training_load", func(rs []runs.Run) (any, error) {
		days, err := trainingload.TrainingStressBalance(rs, q.start, q.end, params, q.tz)
		if err != nil {
			return nil, err
		}
		out := make([]DayTrainingLoad, len(days))
		for i, d := range days {
			out[i] = DayTrainingLoad{Date: timezone.FormatDate(d.Date), TrainingLoad: d.Load}
		}
		return out, nil
	})
}

var defaultAthlete = trainingload.Params{MaxHR: 192, RestingHR: 42, Sex: trainingload.Male}

func (handler *Handler) HandleTrimpByDay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, err := handler.parseRange(query, false)
	if err != nil {
		apperr.WriteHTTP(w, "metrics trimp by day", err)
		return
	}
	params, err := athleteParams(query, &defaultAthlete)
	if err != nil {
		apperr.WriteHTTP(w, "metrics trimp by day", err)
		return
	}

	handler.compute(w, r, "trimp_by_day", func(rs []runs.Run) (any, error) {
		days, err := trainingload.TrimpByDay(rs, q.start, q.end, params, q.tz)
		if err != nil {
			return nil, err
		}
		out := make([]DayTrimp, len(days))
		for i, d := range days {
			out[i] = DayTrimp{Date: timezone.FormatDate(d.Date), Trimp: d.Trimp}
		}
		return out, nil
	})
}

func dayMileage(days []agg.DayValue) []DayMileage {
	out := make([]DayMileage, len(days))
	for i, d := range days {
		out[i] = DayMileage{Date: timezone.FormatDate(d.Date), Mileage: d.Value}
	}
	return out
}
