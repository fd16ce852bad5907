package events

import (
	"context"

	"github.com/groblegark/graphd/internal/model"
)

// Event topic constants
const (
	TopicGraphCreated  = "graphd.graph.created"
	TopicGraphUpdated  = "graphd.graph.updated"
	TopicGraphDeleted  = "graphd.graph.deleted"
	TopicGraphImported = "graphd.graph.imported"

	TopicNodeCreated = "graphd.node.created"
	TopicNodeUpdated = "graphd.node.updated"
	TopicNodeDeleted = "graphd.node.deleted"

	TopicEdgeCreated = "graphd.edge.created"
	TopicEdgeUpdated = "graphd.edge.updated"
	TopicEdgeDeleted = "graphd.edge.deleted"
)

// Event types

type GraphCreated struct {
	Graph *model.Graph `json:"graph"`
}

type GraphUpdated struct {
	Graph   *model.Graph   `json:"graph"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type GraphDeleted struct {
	GraphID string `json:"graph_id"`
}

type GraphImported struct {
	Graph     *model.Graph `json:"graph"`
	NodeCount int          `json:"node_count"`
	EdgeCount int          `json:"edge_count"`
}

type NodeCreated struct {
	Node *model.Node `json:"node"`
}

type NodeUpdated struct {
	Node    *model.Node    `json:"node"`
	Changes map[string]any `json:"changes"`
}

type NodeDeleted struct {
	GraphID string `json:"graph_id"`
	NodeID  string `json:"node_id"`
}

type EdgeCreated struct {
	Edge *model.Edge `json:"edge"`
}

type EdgeUpdated struct {
	Edge    *model.Edge    `json:"edge"`
	Changes map[string]any `json:"changes"`
}

type EdgeDeleted struct {
	GraphID string `json:"graph_id"`
	EdgeID  string `json:"edge_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
