package punchsync

import "time"

type State string

const (
	StateIdle    State = "IDLE"
	StateSyncing State = "SYNCING"
	StateSuccess State = "SUCCESS"
)

// Status is a snapshot of the synchronizer.
type Status struct {
	State        State      `json:"state"`
	Online       bool       `json:"online"`
	PendingCount int        `json:"pending_count"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	LastSynced   int        `json:"last_synced"`
}
