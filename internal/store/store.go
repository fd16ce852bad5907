package store

import (
	"context"
	"errors"

	"github.com/groblegark/graphd/internal/model"
)

// ErrConflict is returned when an insert violates a uniqueness or
// referential constraint (duplicate node key, cross-graph edge endpoint).
var ErrConflict = errors.New("store: constraint violation")

// Store defines the persistence interface for graphs.
type Store interface {
	// Graph CRUD
	CreateGraph(ctx context.Context, g *model.Graph) error
	GetGraph(ctx context.Context, id string) (*model.Graph, error)
	ListGraphs(ctx context.Context, filter model.GraphFilter) ([]*model.Graph, int, error) // returns graphs, total count, error
	UpdateGraph(ctx context.Context, g *model.Graph) error
	DeleteGraph(ctx context.Context, id string) error

	// Node CRUD
	CreateNode(ctx context.Context, n *model.Node) error
	GetNode(ctx context.Context, id string) (*model.Node, error)
	GetNodeByKey(ctx context.Context, graphID, nodeKey string) (*model.Node, error)
	ListNodes(ctx context.Context, graphID string) ([]*model.Node, error)
	UpdateNode(ctx context.Context, n *model.Node) error
	DeleteNode(ctx context.Context, id string) error

	// Edge CRUD
	CreateEdge(ctx context.Context, e *model.Edge) error
	GetEdge(ctx context.Context, id string) (*model.Edge, error)
	ListEdges(ctx context.Context, graphID string) ([]*model.Edge, error)
	UpdateEdge(ctx context.Context, e *model.Edge) error
	DeleteEdge(ctx context.Context, id string) error

	// Aggregates
	ExportGraph(ctx context.Context, graphID string) (*model.GraphExport, error)
	GetStats(ctx context.Context) (*model.Stats, error)

	// Change log
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, graphID string) ([]*model.Event, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
