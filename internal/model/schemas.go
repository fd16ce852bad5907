package model

import (
	"encoding/json"
	"time"
)

// Transfer schemas. These carry no lifecycle of their own: inputs exist for
// the duration of one validation pass, outputs for one serialization.
// Coordinates and weights travel as floats; the persisted model converts
// them to decimals via NumericFromFloat.

// GraphCreate is the input for creating a new graph.
type GraphCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Properties  json.RawMessage `json:"properties,omitempty"`
}

// GraphUpdate is the input for updating an existing graph. Nil fields are
// left unchanged.
type GraphUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Properties  json.RawMessage `json:"properties,omitempty"`
}

// NodeCreate is the input for adding a node to a graph.
type NodeCreate struct {
	NodeID string          `json:"node_id"`
	Label  string          `json:"label,omitempty"`
	X      *float64        `json:"x,omitempty"`
	Y      *float64        `json:"y,omitempty"`
	Style  json.RawMessage `json:"style,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// NodeUpdate is the input for updating a node. Nil fields are left unchanged.
type NodeUpdate struct {
	Label *string         `json:"label,omitempty"`
	X     *float64        `json:"x,omitempty"`
	Y     *float64        `json:"y,omitempty"`
	Style json.RawMessage `json:"style,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EdgeCreate is the input for adding an edge to a graph. Source and target
// reference Node.ID values (not user-facing node keys) and must belong to
// the same graph the edge is created in.
type EdgeCreate struct {
	EdgeID       string          `json:"edge_id,omitempty"`
	SourceNodeID string          `json:"source_node_id"`
	TargetNodeID string          `json:"target_node_id"`
	Label        string          `json:"label,omitempty"`
	Weight       *float64        `json:"weight,omitempty"`
	Style        json.RawMessage `json:"style,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// EdgeUpdate is the input for updating an edge. Nil fields are left unchanged.
type EdgeUpdate struct {
	Label  *string         `json:"label,omitempty"`
	Weight *float64        `json:"weight,omitempty"`
	Style  json.RawMessage `json:"style,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// NodeData is one node record inside a GraphInput or GraphExport. ID is the
// user-facing node key.
type NodeData struct {
	ID    string          `json:"id"`
	Label string          `json:"label,omitempty"`
	X     *float64        `json:"x,omitempty"`
	Y     *float64        `json:"y,omitempty"`
	Style json.RawMessage `json:"style,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EdgeData is one edge record inside a GraphInput or GraphExport. Source and
// Target are user-facing node keys from the same document.
type EdgeData struct {
	ID     string          `json:"id,omitempty"`
	Source string          `json:"source"`
	Target string          `json:"target"`
	Label  string          `json:"label,omitempty"`
	Weight *float64        `json:"weight,omitempty"`
	Style  json.RawMessage `json:"style,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// GraphInput is a complete graph document for transactional import.
type GraphInput struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Nodes       []NodeData      `json:"nodes,omitempty"`
	Edges       []EdgeData      `json:"edges,omitempty"`
	Properties  json.RawMessage `json:"properties,omitempty"`
}

// DefaultGraphName is used when a GraphInput carries no name.
const DefaultGraphName = "Untitled Graph"

// GraphResponse is the output shape for a single graph.
type GraphResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Properties  json.RawMessage `json:"properties,omitempty"`
	NodeCount   int             `json:"node_count"`
	EdgeCount   int             `json:"edge_count"`
}

// NodeResponse is the output shape for a single node.
type NodeResponse struct {
	ID        string          `json:"id"`
	GraphID   string          `json:"graph_id"`
	NodeID    string          `json:"node_id"`
	Label     string          `json:"label"`
	X         *float64        `json:"x,omitempty"`
	Y         *float64        `json:"y,omitempty"`
	Style     json.RawMessage `json:"style,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// EdgeResponse is the output shape for a single edge.
type EdgeResponse struct {
	ID           string          `json:"id"`
	GraphID      string          `json:"graph_id"`
	EdgeID       string          `json:"edge_id,omitempty"`
	SourceNodeID string          `json:"source_node_id"`
	TargetNodeID string          `json:"target_node_id"`
	Label        string          `json:"label"`
	Weight       *float64        `json:"weight,omitempty"`
	Style        json.RawMessage `json:"style,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GraphExport is a complete graph document as produced by the export
// endpoint. Its node and edge records use user-facing keys, so an export is
// valid GraphInput for re-import.
type GraphExport struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Properties  json.RawMessage `json:"properties,omitempty"`
	Nodes       []NodeData      `json:"nodes"`
	Edges       []EdgeData      `json:"edges"`
}
