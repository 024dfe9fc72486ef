package domain

import "time"

type SyncStatus string

const (
	SyncStatusPending  SyncStatus = "pending"
	SyncStatusFinished SyncStatus = "finished"
	SyncStatusFailed   SyncStatus = "failed"
)

// SyncState tracks the last pull of a remote profile into the local store.
type SyncState struct {
	Profile      string
	Status       SyncStatus
	Records      int
	LastSyncedAt *time.Time
	Error        *string
}

// DatasetEvent is published whenever the local dataset changes.
type DatasetEvent struct {
	Type    string
	Origin  string
	Records int
	At      time.Time
}

const EventDatasetUpdated = "dataset.updated"
