package sync

import (
	"context"
	"database/sql"
	"sort"

	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

// mockStore is a minimal in-memory store for snapshot tests.
type mockStore struct {
	graphs map[string]*model.Graph
	nodes  map[string]*model.Node
	edges  map[string]*model.Edge
}

func newMockStore() *mockStore {
	return &mockStore{
		graphs: make(map[string]*model.Graph),
		nodes:  make(map[string]*model.Node),
		edges:  make(map[string]*model.Edge),
	}
}

func (m *mockStore) CreateGraph(_ context.Context, g *model.Graph) error {
	m.graphs[g.ID] = g
	return nil
}

func (m *mockStore) GetGraph(_ context.Context, id string) (*model.Graph, error) {
	g, ok := m.graphs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return g, nil
}

func (m *mockStore) ListGraphs(_ context.Context, _ model.GraphFilter) ([]*model.Graph, int, error) {
	var result []*model.Graph
	for _, g := range m.graphs {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, len(result), nil
}

func (m *mockStore) UpdateGraph(_ context.Context, g *model.Graph) error {
	m.graphs[g.ID] = g
	return nil
}

func (m *mockStore) DeleteGraph(_ context.Context, id string) error {
	delete(m.graphs, id)
	return nil
}

func (m *mockStore) CreateNode(_ context.Context, n *model.Node) error {
	m.nodes[n.ID] = n
	return nil
}

func (m *mockStore) GetNode(_ context.Context, id string) (*model.Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return n, nil
}

func (m *mockStore) GetNodeByKey(_ context.Context, _, _ string) (*model.Node, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) ListNodes(_ context.Context, graphID string) ([]*model.Node, error) {
	var result []*model.Node
	for _, n := range m.nodes {
		if n.GraphID == graphID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NodeID < result[j].NodeID })
	return result, nil
}

func (m *mockStore) UpdateNode(_ context.Context, n *model.Node) error {
	m.nodes[n.ID] = n
	return nil
}

func (m *mockStore) DeleteNode(_ context.Context, id string) error {
	delete(m.nodes, id)
	return nil
}

func (m *mockStore) CreateEdge(_ context.Context, e *model.Edge) error {
	m.edges[e.ID] = e
	return nil
}

func (m *mockStore) GetEdge(_ context.Context, id string) (*model.Edge, error) {
	e, ok := m.edges[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

func (m *mockStore) ListEdges(_ context.Context, graphID string) ([]*model.Edge, error) {
	var result []*model.Edge
	for _, e := range m.edges {
		if e.GraphID == graphID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) UpdateEdge(_ context.Context, e *model.Edge) error {
	m.edges[e.ID] = e
	return nil
}

func (m *mockStore) DeleteEdge(_ context.Context, id string) error {
	delete(m.edges, id)
	return nil
}

func (m *mockStore) ExportGraph(_ context.Context, graphID string) (*model.GraphExport, error) {
	g, ok := m.graphs[graphID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	export := &model.GraphExport{
		Name:        g.Name,
		Description: g.Description,
		Properties:  g.Properties,
		Nodes:       []model.NodeData{},
		Edges:       []model.EdgeData{},
	}
	keyByID := make(map[string]string)
	nodes, _ := m.ListNodes(context.Background(), graphID)
	for _, n := range nodes {
		keyByID[n.ID] = n.NodeID
		export.Nodes = append(export.Nodes, model.NodeData{
			ID:    n.NodeID,
			Label: n.Label,
			X:     model.FloatFromNumeric(n.X),
			Y:     model.FloatFromNumeric(n.Y),
		})
	}
	edges, _ := m.ListEdges(context.Background(), graphID)
	for _, e := range edges {
		export.Edges = append(export.Edges, model.EdgeData{
			ID:     e.EdgeID,
			Source: keyByID[e.SourceNodeID],
			Target: keyByID[e.TargetNodeID],
			Label:  e.Label,
			Weight: model.FloatFromNumeric(e.Weight),
		})
	}
	return export, nil
}

func (m *mockStore) GetStats(_ context.Context) (*model.Stats, error) {
	return &model.Stats{
		TotalGraphs: len(m.graphs),
		TotalNodes:  len(m.nodes),
		TotalEdges:  len(m.edges),
	}, nil
}

func (m *mockStore) RecordEvent(_ context.Context, _ *model.Event) error {
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, _ string) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error {
	return nil
}
