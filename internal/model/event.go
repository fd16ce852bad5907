package model

import (
	"encoding/json"
	"time"
)

// Event is one persisted change-log entry for a graph.
type Event struct {
	ID        int64           `json:"id"`
	Topic     string          `json:"topic"`
	GraphID   string          `json:"graph_id"`
	Actor     string          `json:"actor,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
