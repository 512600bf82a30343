// Package timezone turns UTC instants into calendar dates local to a user's IANA timezone.
//
// A calendar date is a time.Time at midnight UTC, whatever the user's timezone.
package timezone

import (
	"strings"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds the number of days a date range may span.
const MaxRangeDays = 100 * 366

// Timestamped is anything that happened at a UTC instant.
type Timestamped interface {
	Timestamp() time.Time
}

type Localized[T Timestamped] struct {
	Item      T
	LocalDate time.Time
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation("date", "invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DaysBetween returns the number of days from start to end; negative when end is before start.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// CheckRange rejects ranges spanning more than MaxRangeDays days.
func CheckRange(start, end time.Time) error {
	if DaysBetween(start, end)+1 > MaxRangeDays {
		return apperr.Validation("end", "range from %s to %s is longer than %d days", FormatDate(start), FormatDate(end), MaxRangeDays)
	}
	return nil
}

// LoadLocation resolves an IANA timezone name. An empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperr.Validation("user_timezone", "unknown timezone %q", name)
	}
	return loc, nil
}

// LocalDate is the calendar date of instant as seen in loc.
func LocalDate(instant time.Time, loc *time.Location) time.Time {
	local := instant.In(loc)
	return Date(local.Year(), local.Month(), local.Day())
}

// Localize pairs every item with its local date in tz. The result is parallel to items.
func Localize[T Timestamped](items []T, tz string) ([]Localized[T], error) {
	loc, err := LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	localized := make([]Localized[T], len(items))
	for i, item := range items {
		localized[i] = Localized[T]{
			Item:      item,
			LocalDate: LocalDate(item.Timestamp(), loc),
		}
	}
	return localized, nil
}

// FilterByLocalDateRange keeps the items whose local date falls in [start, end].
func FilterByLocalDateRange[T Timestamped](items []T, start, end time.Time, tz string) ([]T, error) {
	localized, err := Localize(items, tz)
	if err != nil {
		return nil, err
	}

	filtered := make([]T, 0, len(items))
	for _, l := range localized {
		if InRange(l.LocalDate, start, end) {
			filtered = append(filtered, l.Item)
		}
	}
	return filtered, nil
}

// InRange reports whether day is within [start, end], both ends inclusive.
func InRange(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// EachDay calls fn for every date from start through end.
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}
