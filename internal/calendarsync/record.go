// Package calendarsync mirrors runs into Google Calendar and keeps one sync record per run.
package calendarsync

import "time"

type Status string

const (
	StatusSynced  Status = "synced"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// Record is the local state of one run's calendar event. RunVersion is the run version the
// event was created from.
type Record struct {
	ID            int64      `json:"id"`
	RunID         string     `json:"run_id"`
	GoogleEventID string     `json:"google_event_id"`
	RunVersion    int        `json:"run_version"`
	Status        Status     `json:"sync_status"`
	ErrorMessage  *string    `json:"error_message"`
	SyncedAt      *time.Time `json:"synced_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Result is the outcome of a sync or unsync. A failed external call is a Result with
// Success false, not an error.
type Result struct {
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	GoogleEventID *string    `json:"google_event_id"`
	SyncStatus    Status     `json:"sync_status"`
	SyncedAt      *time.Time `json:"synced_at"`
}

type StatusResult struct {
	RunID         string     `json:"run_id"`
	IsSynced      bool       `json:"is_synced"`
	SyncStatus    *Status    `json:"sync_status"`
	SyncedAt      *time.Time `json:"synced_at"`
	GoogleEventID *string    `json:"google_event_id"`
	RunVersion    *int       `json:"run_version"`
	ErrorMessage  *string    `json:"error_message"`
}

func statusOf(runID string, rec *Record) StatusResult {
	if rec == nil {
		return StatusResult{RunID: runID}
	}
	status := rec.Status
	version := rec.RunVersion
	return StatusResult{
		RunID:         runID,
		IsSynced:      rec.Status == StatusSynced,
		SyncStatus:    &status,
		SyncedAt:      rec.SyncedAt,
		GoogleEventID: nonEmpty(rec.GoogleEventID),
		RunVersion:    &version,
		ErrorMessage:  rec.ErrorMessage,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
