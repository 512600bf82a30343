package metricsapi

import (
	"net/http"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/agg"
	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"
	"github.com/eswan18/fitness-api-sub000/internal/trainingload"
)

const summaryLoadDays = 60

var (
	beginningOfTime = timezone.Date(1, time.January, 1)
	endOfTime       = timezone.Date(9999, time.December, 31)
)

// LoadSeries is one chart line of the summary, as [date, value] pairs, newest first.
type LoadSeries struct {
	Name string  `json:"name"`
	Data [][]any `json:"data"`
}

// Summary is the dashboard snapshot rendered by e-ink displays.
type Summary struct {
	MilesAllTime           float64      `json:"miles_all_time"`
	MinutesAllTime         float64      `json:"minutes_all_time"`
	MilesThisCalendarMonth float64      `json:"miles_this_calendar_month"`
	DaysThisCalendarMonth  int          `json:"days_this_calendar_month"`
	CalendarMonthName      string       `json:"calendar_month_name"`
	MilesThisCalendarYear  float64      `json:"miles_this_calendar_year"`
	DaysThisCalendarYear   int          `json:"days_this_calendar_year"`
	CalendarYear           int          `json:"calendar_year"`
	MilesLast30Days        float64      `json:"miles_last_30_days"`
	MilesLast365Days       float64      `json:"miles_last_365_days"`
	LoadData               []LoadSeries `json:"load_data"`
}

// HandleSummary combines the all-time, calendar and trailing mileage totals with the last 60
// days of training load, all relative to today in the user's timezone.
func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tz := query.Get("user_timezone")
	loc, err := timezone.LoadLocation(tz)
	if err != nil {
		apperr.WriteHTTP(w, "summary", err)
		return
	}
	params, err := athleteParams(query, &defaultAthlete)
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		apperr.WriteHTTP(w, "summary", err)
		return
	}
	today := timezone.LocalDate(handler.now(), loc)

	handler.compute(w, r, "summary", func(rs []runs.Run) (any, error) {
		return buildSummary(rs, today, tz, params)
	})
}

func buildSummary(rs []runs.Run, today time.Time, tz string, params trainingload.Params) (*Summary, error) {
	summary := &Summary{
		DaysThisCalendarMonth: today.Day(),
		CalendarMonthName:     today.Month().String(),
		DaysThisCalendarYear:  today.YearDay(),
		CalendarYear:          today.Year(),
	}

	// all-time totals ignore the user's timezone
	var err error
	if summary.MilesAllTime, err = agg.TotalMileage(rs, beginningOfTime, endOfTime, ""); err != nil {
		return nil, err
	}
	seconds, err := agg.TotalSeconds(rs, beginningOfTime, endOfTime, "")
	if err != nil {
		return nil, err
	}
	summary.MinutesAllTime = seconds / 60

	milesSince := []struct {
		from time.Time
		into *float64
	}{
		{from: today.AddDate(0, 0, 1-today.Day()), into: &summary.MilesThisCalendarMonth},
		{from: timezone.Date(today.Year(), time.January, 1), into: &summary.MilesThisCalendarYear},
		{from: today.AddDate(0, 0, -30), into: &summary.MilesLast30Days},
		{from: today.AddDate(0, 0, -365), into: &summary.MilesLast365Days},
	}
	for _, m := range milesSince {
		if *m.into, err = agg.TotalMileage(rs, m.from, endOfTime, tz); err != nil {
			return nil, err
		}
	}

	days, err := trainingload.TrainingStressBalance(rs, today.AddDate(0, 0, -summaryLoadDays), today, params, tz)
	if err != nil {
		return nil, err
	}
	tsb := LoadSeries{Name: "tsb", Data: make([][]any, 0, len(days))}
	atl := LoadSeries{Name: "atl", Data: make([][]any, 0, len(days))}
	ctl := LoadSeries{Name: "ctl", Data: make([][]any, 0, len(days))}
	for i := len(days) - 1; i >= 0; i-- {
		date := timezone.FormatDate(days[i].Date)
		tsb.Data = append(tsb.Data, []any{date, days[i].Load.TSB})
		atl.Data = append(atl.Data, []any{date, days[i].Load.ATL})
		ctl.Data = append(ctl.Data, []any{date, days[i].Load.CTL})
	}
	summary.LoadData = []LoadSeries{tsb, atl, ctl}

	return summary, nil
}
