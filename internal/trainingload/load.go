package trainingload

import (
	"math"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"
)

const (
	ATLTau = 7
	CTLTau = 42
)

type DayTrimp struct {
	Date  time.Time
	Trimp float64
}

type Load struct {
	CTL float64 `json:"ctl"`
	ATL float64 `json:"atl"`
	TSB float64 `json:"tsb"`
}

type DayTrainingLoad struct {
	Date time.Time
	Load Load
}

// ExponentialLoad smooths values with alpha = 1 - e^(-1/tau), starting from 0.
func ExponentialLoad(values []float64, tau float64) []float64 {
	alpha := 1 - math.Exp(-1/tau)
	load := make([]float64, len(values))
	prev := 0.0
	for i, v := range values {
		prev += alpha * (v - prev)
		load[i] = prev
	}
	return load
}

// TrimpByDay sums TRIMP per local date for every day in [start, end]. Runs without heart rate
// are skipped.
func TrimpByDay(rs []runs.Run, start, end time.Time, params Params, tz string) ([]DayTrimp, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := timezone.CheckRange(start, end); err != nil {
		return nil, err
	}
	perDay, _, err := dailyTrimp(rs, params, tz)
	if err != nil {
		return nil, err
	}

	days := make([]DayTrimp, 0, max(timezone.DaysBetween(start, end)+1, 0))
	timezone.EachDay(start, end, func(day time.Time) {
		days = append(days, DayTrimp{Date: day, Trimp: perDay[day]})
	})
	return days, nil
}

// TrainingStressBalance returns CTL, ATL and TSB = CTL - ATL for every day in [start, end].
// Smoothing starts at the first heart-rate-bearing run, even when that is long before start,
// so the loads are warmed up by the whole history.
func TrainingStressBalance(rs []runs.Run, start, end time.Time, params Params, tz string) ([]DayTrainingLoad, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := timezone.CheckRange(start, end); err != nil {
		return nil, err
	}
	perDay, first, err := dailyTrimp(rs, params, tz)
	if err != nil {
		return nil, err
	}

	from := start
	if first != nil && first.Before(start) {
		from = *first
	}

	var (
		dates  []time.Time
		trimps []float64
	)
	timezone.EachDay(from, end, func(day time.Time) {
		dates = append(dates, day)
		trimps = append(trimps, perDay[day])
	})

	atl := ExponentialLoad(trimps, ATLTau)
	ctl := ExponentialLoad(trimps, CTLTau)

	result := make([]DayTrainingLoad, 0, max(timezone.DaysBetween(start, end)+1, 0))
	for i, day := range dates {
		if !timezone.InRange(day, start, end) {
			continue
		}
		result = append(result, DayTrainingLoad{
			Date: day,
			Load: Load{CTL: ctl[i], ATL: atl[i], TSB: ctl[i] - atl[i]},
		})
	}
	return result, nil
}

// dailyTrimp sums TRIMP per local date over the runs with heart rate and reports the earliest
// such date, nil when there is none.
func dailyTrimp(rs []runs.Run, params Params, tz string) (map[time.Time]float64, *time.Time, error) {
	withHR := make([]runs.Run, 0, len(rs))
	for _, r := range rs {
		if r.AvgHeartRate != nil {
			withHR = append(withHR, r)
		}
	}

	localized, err := timezone.Localize(withHR, tz)
	if err != nil {
		return nil, nil, err
	}

	perDay := make(map[time.Time]float64)
	var first *time.Time
	for _, l := range localized {
		perDay[l.LocalDate] += trimp(*l.Item.AvgHeartRate, l.Item.Duration, params)
		if first == nil || l.LocalDate.Before(*first) {
			d := l.LocalDate
			first = &d
		}
	}
	return perDay, first, nil
}
