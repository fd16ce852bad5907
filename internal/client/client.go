// Package client provides a transport-agnostic interface for the graphd
// service and an HTTP/JSON implementation that talks to the graphd REST API.
package client

import (
	"context"

	"github.com/groblegark/graphd/internal/model"
)

// GraphClient is the interface that all graphd CLI commands use to
// communicate with the graph server. It is implemented by HTTPClient.
type GraphClient interface {
	// Graph CRUD
	CreateGraph(ctx context.Context, req *model.GraphCreate) (*model.GraphResponse, error)
	GetGraph(ctx context.Context, id string) (*model.GraphResponse, error)
	ListGraphs(ctx context.Context, req *ListGraphsRequest) (*ListGraphsResponse, error)
	UpdateGraph(ctx context.Context, id string, req *model.GraphUpdate) (*model.GraphResponse, error)
	DeleteGraph(ctx context.Context, id string) error

	// Documents
	ImportGraph(ctx context.Context, doc *model.GraphInput) (*model.GraphResponse, error)
	ExportGraph(ctx context.Context, id string) (*model.GraphExport, error)

	// Nodes
	CreateNode(ctx context.Context, graphID string, req *model.NodeCreate) (*model.NodeResponse, error)
	GetNode(ctx context.Context, id string) (*model.NodeResponse, error)
	ListNodes(ctx context.Context, graphID string) ([]*model.NodeResponse, error)
	UpdateNode(ctx context.Context, id string, req *model.NodeUpdate) (*model.NodeResponse, error)
	DeleteNode(ctx context.Context, id string) error

	// Edges
	CreateEdge(ctx context.Context, graphID string, req *model.EdgeCreate) (*model.EdgeResponse, error)
	GetEdge(ctx context.Context, id string) (*model.EdgeResponse, error)
	ListEdges(ctx context.Context, graphID string) ([]*model.EdgeResponse, error)
	UpdateEdge(ctx context.Context, id string, req *model.EdgeUpdate) (*model.EdgeResponse, error)
	DeleteEdge(ctx context.Context, id string) error

	// Aggregates
	GetStats(ctx context.Context) (*model.Stats, error)
	GetEvents(ctx context.Context, graphID string) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ListGraphsRequest holds parameters for listing graphs.
type ListGraphsRequest struct {
	Search string
	Sort   string
	Limit  int
	Offset int
}

// ListGraphsResponse is the response from ListGraphs.
type ListGraphsResponse struct {
	Graphs []*model.GraphResponse `json:"graphs"`
	Total  int                    `json:"total"`
}
