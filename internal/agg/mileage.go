package agg

import (
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/timezone"
)

func Miles(r runs.Run) float64 {
	return r.Distance
}

func Seconds(r runs.Run) float64 {
	return r.Duration
}

func TotalMileage(rs []runs.Run, start, end time.Time, tz string) (float64, error) {
	return Total(rs, start, end, tz, Miles)
}

func TotalSeconds(rs []runs.Run, start, end time.Time, tz string) (float64, error) {
	return Total(rs, start, end, tz, Seconds)
}

func MilesByDay(rs []runs.Run, start, end time.Time, tz string) ([]DayValue, error) {
	return ByDay(rs, start, end, tz, Miles)
}

func RollingMileage(rs []runs.Run, start, end time.Time, window int, tz string) ([]DayValue, error) {
	return RollingSum(rs, start, end, window, tz, Miles)
}

// AvgMilesPerDay spreads the total mileage of [start, end] over every day of it, run or not.
// An empty range averages to 0.
func AvgMilesPerDay(rs []runs.Run, start, end time.Time, tz string) (float64, error) {
	days := timezone.DaysBetween(start, end) + 1
	if days <= 0 {
		return 0, nil
	}
	total, err := TotalMileage(rs, start, end, tz)
	if err != nil {
		return 0, err
	}
	return total / float64(days), nil
}
