package store

import (
	"encoding/json"
	"time"
)

// SnapshotThreshold is the number of events after which aggregates are snapshotted.
const SnapshotThreshold = 10

// Snapshot is a point-in-time serialized aggregate state.
type Snapshot struct {
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	Version       int             `json:"version"`
	State         json.RawMessage `json:"state"`
	CreatedAt     time.Time       `json:"created_at"`
}
