package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Field length limits shared by the persisted entities and the transfer
// schemas. These mirror the column definitions in the migrations.
const (
	MaxNameLen        = 200
	MaxDescriptionLen = 1000
	MaxKeyLen         = 100
	MaxLabelLen       = 200
)

// Graph is a named container of nodes and edges. Deleting a graph removes
// all of its nodes and edges.
type Graph struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Properties  json.RawMessage `json:"properties,omitempty"`

	// Counts -- populated by queries, not stored in the graphs table.
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// Node is a vertex within one graph. NodeID is the user-facing key, unique
// within the owning graph; ID is the service-generated record identifier.
type Node struct {
	ID        string           `json:"id"`
	GraphID   string           `json:"graph_id"`
	NodeID    string           `json:"node_id"`
	Label     string           `json:"label,omitempty"`
	X         *decimal.Decimal `json:"x,omitempty"`
	Y         *decimal.Decimal `json:"y,omitempty"`
	Style     json.RawMessage  `json:"style,omitempty"`
	Data      json.RawMessage  `json:"data,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Edge is a directed connection between two nodes of the same graph.
// SourceNodeID and TargetNodeID reference Node.ID, not the user-facing key.
type Edge struct {
	ID           string           `json:"id"`
	GraphID      string           `json:"graph_id"`
	EdgeID       string           `json:"edge_id,omitempty"`
	SourceNodeID string           `json:"source_node_id"`
	TargetNodeID string           `json:"target_node_id"`
	Label        string           `json:"label,omitempty"`
	Weight       *decimal.Decimal `json:"weight,omitempty"`
	Style        json.RawMessage  `json:"style,omitempty"`
	Data         json.RawMessage  `json:"data,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Stats holds aggregate entity counts for the whole store.
type Stats struct {
	TotalGraphs int `json:"total_graphs"`
	TotalNodes  int `json:"total_nodes"`
	TotalEdges  int `json:"total_edges"`
}
