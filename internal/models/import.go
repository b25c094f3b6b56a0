package models

import "time"

type ImportState string

const (
	ImportQueued  ImportState = "queued"
	ImportRunning ImportState = "running"
	ImportDone    ImportState = "done"
	ImportFailed  ImportState = "failed"
)

// ImportJob tracks one background vocabulary import.
type ImportJob struct {
	ID         string      `json:"id"`
	Source     string      `json:"source"`
	State      ImportState `json:"state"`
	Total      int         `json:"total"`
	Inserted   int         `json:"inserted"`
	Skipped    int         `json:"skipped"`
	RowErrors  []string    `json:"row_errors,omitempty"`
	Error      string      `json:"error,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}
