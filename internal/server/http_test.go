package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/groblegark/graphd/internal/events"
	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

type mockStore struct {
	graphs map[string]*model.Graph
	nodes  map[string]*model.Node
	edges  map[string]*model.Edge
	events []*model.Event

	// createNodeErr, when non-nil, is returned by CreateNode (for testing rollback).
	createNodeErr error
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
	// Clone and attach counts so callers see the latest state.
	clone := *g
	clone.NodeCount, clone.EdgeCount = 0, 0
	for _, n := range m.nodes {
		if n.GraphID == id {
			clone.NodeCount++
		}
	}
	for _, e := range m.edges {
		if e.GraphID == id {
			clone.EdgeCount++
		}
	}
	return &clone, nil
}

func (m *mockStore) ListGraphs(_ context.Context, filter model.GraphFilter) ([]*model.Graph, int, error) {
	var result []*model.Graph
	for id := range m.graphs {
		g, _ := m.GetGraph(context.Background(), id)
		if filter.Search != "" {
			if !strings.Contains(strings.ToLower(g.Name), strings.ToLower(filter.Search)) &&
				!strings.Contains(strings.ToLower(g.Description), strings.ToLower(filter.Search)) {
				continue
			}
		}
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := len(result)
	if filter.Offset > 0 && filter.Offset < len(result) {
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, total, nil
}

func (m *mockStore) UpdateGraph(_ context.Context, g *model.Graph) error {
	if _, ok := m.graphs[g.ID]; !ok {
		return sql.ErrNoRows
	}
	m.graphs[g.ID] = g
	return nil
}

func (m *mockStore) DeleteGraph(_ context.Context, id string) error {
	if _, ok := m.graphs[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.graphs, id)
	// Cascade, mirroring the ON DELETE CASCADE constraints.
	for nid, n := range m.nodes {
		if n.GraphID == id {
			delete(m.nodes, nid)
		}
	}
	for eid, e := range m.edges {
		if e.GraphID == id {
			delete(m.edges, eid)
		}
	}
	return nil
}

func (m *mockStore) CreateNode(_ context.Context, n *model.Node) error {
	if m.createNodeErr != nil {
		return m.createNodeErr
	}
	for _, existing := range m.nodes {
		if existing.GraphID == n.GraphID && existing.NodeID == n.NodeID {
			return store.ErrConflict
		}
	}
	m.nodes[n.ID] = n
	return nil
}

func (m *mockStore) GetNode(_ context.Context, id string) (*model.Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *n
	return &clone, nil
}

func (m *mockStore) GetNodeByKey(_ context.Context, graphID, nodeKey string) (*model.Node, error) {
	for _, n := range m.nodes {
		if n.GraphID == graphID && n.NodeID == nodeKey {
			clone := *n
			return &clone, nil
		}
	}
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
	if _, ok := m.nodes[n.ID]; !ok {
		return sql.ErrNoRows
	}
	m.nodes[n.ID] = n
	return nil
}

func (m *mockStore) DeleteNode(_ context.Context, id string) error {
	if _, ok := m.nodes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.nodes, id)
	for eid, e := range m.edges {
		if e.SourceNodeID == id || e.TargetNodeID == id {
			delete(m.edges, eid)
		}
	}
	return nil
}

func (m *mockStore) CreateEdge(_ context.Context, e *model.Edge) error {
	src, ok := m.nodes[e.SourceNodeID]
	if !ok || src.GraphID != e.GraphID {
		return store.ErrConflict
	}
	tgt, ok := m.nodes[e.TargetNodeID]
	if !ok || tgt.GraphID != e.GraphID {
		return store.ErrConflict
	}
	m.edges[e.ID] = e
	return nil
}

func (m *mockStore) GetEdge(_ context.Context, id string) (*model.Edge, error) {
	e, ok := m.edges[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *e
	return &clone, nil
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
	if _, ok := m.edges[e.ID]; !ok {
		return sql.ErrNoRows
	}
	m.edges[e.ID] = e
	return nil
}

func (m *mockStore) DeleteEdge(_ context.Context, id string) error {
	if _, ok := m.edges[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.edges, id)
	return nil
}

func (m *mockStore) ExportGraph(_ context.Context, graphID string) (*model.GraphExport, error) {
	g, ok := m.graphs[graphID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	keyByID := make(map[string]string)
	export := &model.GraphExport{
		Name:        g.Name,
		Description: g.Description,
		Properties:  g.Properties,
		Nodes:       []model.NodeData{},
		Edges:       []model.EdgeData{},
	}
	nodes, _ := m.ListNodes(context.Background(), graphID)
	for _, n := range nodes {
		keyByID[n.ID] = n.NodeID
		export.Nodes = append(export.Nodes, model.NodeData{
			ID:    n.NodeID,
			Label: n.Label,
			X:     model.FloatFromNumeric(n.X),
			Y:     model.FloatFromNumeric(n.Y),
			Style: n.Style,
			Data:  n.Data,
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
			Style:  e.Style,
			Data:   e.Data,
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

func (m *mockStore) RecordEvent(_ context.Context, event *model.Event) error {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, graphID string) ([]*model.Event, error) {
	var result []*model.Event
	for _, e := range m.events {
		if e.GraphID == graphID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error {
	return nil
}

// newTestServer returns a fresh server, its mock store, and an HTTP handler.
func newTestServer() (*GraphServer, *mockStore, http.Handler) {
	ms := newMockStore()
	s := NewGraphServer(ms, &events.NoopPublisher{})
	return s, ms, s.NewHTTPHandler("")
}

// doJSON performs an HTTP request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// requireStatus asserts the recorder has the expected HTTP status code.
func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected status %d, got %d; body: %s", code, rec.Code, rec.Body.String())
	}
}

// decodeJSON decodes the recorder's response body into v.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// createTestGraph creates a graph via the API and returns its ID.
func createTestGraph(t *testing.T, h http.Handler, name string) string {
	t.Helper()
	rec := doJSON(t, h, "POST", "/v1/graphs", map[string]any{"name": name})
	requireStatus(t, rec, 201)
	var g model.GraphResponse
	decodeJSON(t, rec, &g)
	return g.ID
}

// createTestNode creates a node via the API and returns its record ID.
func createTestNode(t *testing.T, h http.Handler, graphID, key string) string {
	t.Helper()
	rec := doJSON(t, h, "POST", "/v1/graphs/"+graphID+"/nodes", map[string]any{"node_id": key})
	requireStatus(t, rec, 201)
	var n model.NodeResponse
	decodeJSON(t, rec, &n)
	return n.ID
}

func TestHandleHealth(t *testing.T) {
	_, _, h := newTestServer()
	rec := doJSON(t, h, "GET", "/v1/health", nil)
	requireStatus(t, rec, 200)
	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %q", body["status"])
	}
}

func TestHandleHTTPErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{"CreateGraph/MissingName", "POST", "/v1/graphs", map[string]any{"description": "no name"}, 400},
		{"CreateGraph/InvalidJSON", "POST", "/v1/graphs", "not an object", 400},
		{"GetGraph/NotFound", "GET", "/v1/graphs/gr-missing", nil, 404},
		{"DeleteGraph/NotFound", "DELETE", "/v1/graphs/gr-missing", nil, 404},
		{"UpdateGraph/NotFound", "PATCH", "/v1/graphs/gr-missing", map[string]any{"name": "x"}, 404},
		{"CreateNode/GraphNotFound", "POST", "/v1/graphs/gr-missing/nodes", map[string]any{"node_id": "n1"}, 404},
		{"CreateNode/MissingKey", "POST", "/v1/graphs/gr-missing/nodes", map[string]any{"label": "x"}, 400},
		{"GetNode/NotFound", "GET", "/v1/nodes/nd-missing", nil, 404},
		{"GetEdge/NotFound", "GET", "/v1/edges/ed-missing", nil, 404},
		{"ExportGraph/NotFound", "GET", "/v1/graphs/gr-missing/export", nil, 404},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, h := newTestServer()
			rec := doJSON(t, h, tc.method, tc.path, tc.body)
			requireStatus(t, rec, tc.code)
		})
	}
}

func TestHandleGetStats(t *testing.T) {
	_, _, h := newTestServer()
	gid := createTestGraph(t, h, "Stats graph")
	createTestNode(t, h, gid, "n1")
	createTestNode(t, h, gid, "n2")

	rec := doJSON(t, h, "GET", "/v1/stats", nil)
	requireStatus(t, rec, 200)
	var stats model.Stats
	decodeJSON(t, rec, &stats)
	if stats.TotalGraphs != 1 || stats.TotalNodes != 2 || stats.TotalEdges != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHandleGetEvents(t *testing.T) {
	_, ms, h := newTestServer()
	gid := createTestGraph(t, h, "Event graph")
	createTestNode(t, h, gid, "n1")

	rec := doJSON(t, h, "GET", "/v1/graphs/"+gid+"/events", nil)
	requireStatus(t, rec, 200)
	var body struct {
		Events []*model.Event `json:"events"`
	}
	decodeJSON(t, rec, &body)
	if len(body.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(body.Events))
	}
	if body.Events[0].Topic != events.TopicGraphCreated {
		t.Errorf("first topic = %q", body.Events[0].Topic)
	}
	if body.Events[1].Topic != events.TopicNodeCreated {
		t.Errorf("second topic = %q", body.Events[1].Topic)
	}
	if len(ms.events) != 2 {
		t.Fatalf("store has %d events", len(ms.events))
	}
}
