// Package pit implements point-in-time replay: stored snapshots of change
// deltas are replayed in order to reconstruct a scope's logical state as of
// a target snapshot's uuid.
package pit

import (
	"time"

	"github.com/google/uuid"
)

// Change operations.
const (
	OpCreate = "CREATE"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// ChangeEntry is one delta within a Snapshot's Changes list.
type ChangeEntry struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Operation string `json:"operation"`
}

// Snapshot is one env_store_pit or secret_store_pit row: an append-only
// delta against a (org, app, env_type) scope, identified by a caller-chosen
// uuid.
type Snapshot struct {
	ID        int64
	UUID      uuid.UUID
	OrgID     string
	AppID     string
	EnvTypeID string
	Changes   []ChangeEntry
	CreatedAt time.Time
}

// KV is one key/value pair of a replayed state.
type KV struct {
	Key   string
	Value string
}
