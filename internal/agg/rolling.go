// Package agg sums run values over calendar days in the user's timezone.
package agg

import (
	"math"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"
)

// MaxWindowDays bounds rolling windows to ten years.
const MaxWindowDays = 3660

// DayValue is the aggregated value of one local calendar day.
type DayValue struct {
	Date  time.Time
	Value float64
}

// Total sums value over the records whose local date is within [start, end].
func Total[T timezone.Timestamped](records []T, start, end time.Time, tz string, value func(T) float64) (float64, error) {
	inRange, err := timezone.FilterByLocalDateRange(records, start, end, tz)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, r := range inRange {
		total += value(r)
	}
	return total, nil
}

// ByDay is the per-day total for every day in [start, end], zero on days without records.
func ByDay[T timezone.Timestamped](records []T, start, end time.Time, tz string, value func(T) float64) ([]DayValue, error) {
	return RollingSum(records, start, end, 1, tz, value)
}

// RollingSum emits, for every day in [start, end], the sum of the window days ending on it.
// Days before start still feed the first windows. Sums are rounded to 4 decimals.
func RollingSum[T timezone.Timestamped](
	records []T,
	start, end time.Time,
	window int,
	tz string,
	value func(T) float64,
) ([]DayValue, error) {
	if err := CheckWindow(window); err != nil {
		return nil, err
	}
	if err := timezone.CheckRange(start, end); err != nil {
		return nil, err
	}

	localized, err := timezone.Localize(records, tz)
	if err != nil {
		return nil, err
	}
	perDay := make(map[time.Time]float64)
	for _, l := range localized {
		perDay[l.LocalDate] += value(l.Item)
	}

	result := make([]DayValue, 0, max(timezone.DaysBetween(start, end)+1, 0))
	initial := start.AddDate(0, 0, -(window - 1))

	// window is a FIFO ring over the last window days: each day evicts the day that leaves it
	ring := make([]float64, window)
	sum := 0.0
	walked := 0
	timezone.EachDay(initial, end, func(today time.Time) {
		slot := walked % window
		walked++
		sum -= ring[slot]
		ring[slot] = perDay[today]
		sum += ring[slot]

		if !today.Before(start) {
			result = append(result, DayValue{Date: today, Value: round4(sum)})
		}
	})

	return result, nil
}

func CheckWindow(window int) error {
	if window < 1 || window > MaxWindowDays {
		return apperr.Validation("window", "must be between 1 and %d, got %d", MaxWindowDays, window)
	}
	return nil
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		// no negative zero from subtraction drift
		return 0
	}
	return r
}
