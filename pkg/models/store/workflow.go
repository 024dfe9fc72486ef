package store

import "time"

type SyncState struct {
	Profile      string
	Status       string
	Records      int
	LastSyncedAt *time.Time
	Error        *string
	UpdatedAt    time.Time
}
