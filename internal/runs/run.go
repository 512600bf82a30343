package runs

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
)

const (
	TypeOutdoorRun   = "Outdoor Run"
	TypeTreadmillRun = "Treadmill Run"

	SourceMapMyFitness = "MapMyFitness"
	SourceStrava       = "Strava"

	SystemUser             = "system"
	InitialImportReason    = "Initial import"
	DefaultHistoryLimit    = 50
	DefaultImportChunkSize = 20

	maxHeartRate = 220
)

type ChangeType string

const (
	ChangeOriginal ChangeType = "original"
	ChangeEdit     ChangeType = "edit"
	ChangeDeletion ChangeType = "deletion"
)

// Snapshot is the full field set of a run at one version.
type Snapshot struct {
	DatetimeUTC  time.Time `json:"datetime_utc"`
	Type         string    `json:"type"`
	Distance     float64   `json:"distance"`
	Duration     float64   `json:"duration"`
	Source       string    `json:"source"`
	AvgHeartRate *float64  `json:"avg_heart_rate"`
	ShoeID       *string   `json:"shoe_id"`
}

// Apply returns a copy of s with every non-nil field of p replacing the current value.
// Source is never touched.
func (s Snapshot) Apply(p Patch) Snapshot {
	next := s
	if p.DatetimeUTC != nil {
		next.DatetimeUTC = p.DatetimeUTC.UTC()
	}
	if p.Type != nil {
		next.Type = *p.Type
	}
	if p.Distance != nil {
		next.Distance = *p.Distance
	}
	if p.Duration != nil {
		next.Duration = *p.Duration
	}
	if p.AvgHeartRate.Set {
		next.AvgHeartRate = p.AvgHeartRate.Value
	}
	if p.ShoeID.Set {
		next.ShoeID = p.ShoeID.Value
	}
	return next
}

// Run is the live projection of a run.
type Run struct {
	ID string `json:"id"`
	Snapshot
	Version      int        `json:"version"`
	DeletedAt    *time.Time `json:"deleted_at"`
	LastEditedAt *time.Time `json:"last_edited_at,omitempty"`
	LastEditedBy *string    `json:"last_edited_by,omitempty"`
}

func (r Run) Timestamp() time.Time {
	return r.DatetimeUTC
}

// Entity is the state of a run as seen by the history protocol: either Active or Deleted.
type Entity interface {
	RunID() string
	Current() Snapshot
	CurrentVersion() int
	sealed()
}

type Active struct {
	ID       string
	Snapshot Snapshot
	Version  int
}

type Deleted struct {
	ID        string
	Snapshot  Snapshot
	Version   int
	DeletedAt time.Time
}

func (a Active) RunID() string       { return a.ID }
func (a Active) Current() Snapshot   { return a.Snapshot }
func (a Active) CurrentVersion() int { return a.Version }
func (Active) sealed()               {}

func (d Deleted) RunID() string       { return d.ID }
func (d Deleted) Current() Snapshot   { return d.Snapshot }
func (d Deleted) CurrentVersion() int { return d.Version }
func (Deleted) sealed()               {}

func EntityOf(r Run) Entity {
	if r.DeletedAt != nil {
		return Deleted{ID: r.ID, Snapshot: r.Snapshot, Version: r.Version, DeletedAt: *r.DeletedAt}
	}
	return Active{ID: r.ID, Snapshot: r.Snapshot, Version: r.Version}
}

type HistoryRecord struct {
	HistoryID     int64      `json:"history_id"`
	RunID         string     `json:"run_id"`
	VersionNumber int        `json:"version_number"`
	ChangeType    ChangeType `json:"change_type"`
	Snapshot
	ChangedAt    time.Time `json:"changed_at"`
	ChangedBy    string    `json:"changed_by"`
	ChangeReason *string   `json:"change_reason"`
}

// Optional distinguishes an absent JSON key from an explicit null, so a patch can clear
// the heart rate or the shoe.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Patch holds the editable fields of a run. Nil (or unset) fields keep their value.
type Patch struct {
	DatetimeUTC  *time.Time        `json:"datetime_utc"`
	Type         *string           `json:"type"`
	Distance     *float64          `json:"distance"`
	Duration     *float64          `json:"duration"`
	AvgHeartRate Optional[float64] `json:"avg_heart_rate"`
	ShoeID       Optional[string]  `json:"shoe_id"`
}

// EditableFields is the allow-list of JSON keys a patch body may carry.
var EditableFields = map[string]struct{}{
	"datetime_utc":   {},
	"type":           {},
	"distance":       {},
	"duration":       {},
	"avg_heart_rate": {},
	"shoe_id":        {},
}

// DecodePatch checks every key of a JSON object against EditableFields before decoding it.
func DecodePatch(data []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Patch{}, apperr.Validation("", "invalid patch body: %s", err)
	}
	if err := CheckEditable(keys(raw)); err != nil {
		return Patch{}, err
	}

	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return Patch{}, apperr.Validation("", "invalid patch body: %s", err)
	}
	return p, nil
}

// CheckEditable fails on the first field name that is not editable, in sorted order.
func CheckEditable(fields []string) error {
	sort.Strings(fields)
	for _, f := range fields {
		if _, ok := EditableFields[f]; !ok {
			return apperr.Validation(f, "field is not allowed to be updated")
		}
	}
	return nil
}

func keys(m map[string]json.RawMessage) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

func (p Patch) IsEmpty() bool {
	return p.DatetimeUTC == nil && p.Type == nil && p.Distance == nil && p.Duration == nil &&
		!p.AvgHeartRate.Set && !p.ShoeID.Set
}

func (p Patch) Validate() error {
	if p.IsEmpty() {
		return apperr.Validation("", "no fields to update")
	}
	if p.Type != nil && *p.Type != TypeOutdoorRun && *p.Type != TypeTreadmillRun {
		return apperr.Validation("type", "unknown run type %q", *p.Type)
	}
	if p.Distance != nil && (*p.Distance < 0 || math.IsNaN(*p.Distance)) {
		return apperr.Validation("distance", "must not be negative")
	}
	if p.Duration != nil && (*p.Duration < 0 || math.IsNaN(*p.Duration)) {
		return apperr.Validation("duration", "must not be negative")
	}
	if hr := p.AvgHeartRate.Value; hr != nil && (*hr < 0 || *hr > maxHeartRate) {
		return apperr.Validation("avg_heart_rate", "must be between 0 and %d", maxHeartRate)
	}
	if p.DatetimeUTC != nil && p.DatetimeUTC.IsZero() {
		return apperr.Validation("datetime_utc", "must be set")
	}
	return nil
}

// PatchFrom builds a patch that sets every editable field to the value it has in s.
func PatchFrom(s Snapshot) Patch {
	dt := s.DatetimeUTC
	typ := s.Type
	distance := s.Distance
	duration := s.Duration
	return Patch{
		DatetimeUTC:  &dt,
		Type:         &typ,
		Distance:     &distance,
		Duration:     &duration,
		AvgHeartRate: Optional[float64]{Set: true, Value: copyPtr(s.AvgHeartRate)},
		ShoeID:       Optional[string]{Set: true, Value: copyPtr(s.ShoeID)},
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ValidateNew checks a run coming from an import.
func ValidateNew(r Run) error {
	if r.ID == "" {
		return apperr.Validation("id", "must be set")
	}
	if r.Source != SourceMapMyFitness && r.Source != SourceStrava {
		return apperr.Validation("source", "unknown source %q", r.Source)
	}
	if r.Type != TypeOutdoorRun && r.Type != TypeTreadmillRun {
		return apperr.Validation("type", "unknown run type %q", r.Type)
	}
	if r.DatetimeUTC.IsZero() {
		return apperr.Validation("datetime_utc", "must be set")
	}
	if r.Distance < 0 || r.Duration < 0 {
		return apperr.Validation("", "run %s: distance and duration must not be negative", r.ID)
	}
	return nil
}

type ImportResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func (r ImportResult) String() string {
	return fmt.Sprintf("inserted %d, skipped %d", r.Inserted, r.Skipped)
}

type ListParams struct {
	IncludeDeleted bool
	// Start and End bound datetime_utc, both optional.
	Start *time.Time
	End   *time.Time
}
