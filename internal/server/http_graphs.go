package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/groblegark/graphd/internal/events"
	"github.com/groblegark/graphd/internal/idgen"
	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

// handleCreateGraph handles POST /v1/graphs.
func (s *GraphServer) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var in model.GraphCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateGraphCreate(&in); err != nil {
		writeInputError(w, err)
		return
	}

	id, err := idgen.Generate(idgen.GraphPrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	now := time.Now().UTC()
	g := &model.Graph{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Properties:  in.Properties,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateGraph(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create graph")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicGraphCreated, g.ID, "", events.GraphCreated{Graph: g})

	writeJSON(w, http.StatusCreated, graphResponse(g))
}

// handleListGraphs handles GET /v1/graphs.
func (s *GraphServer) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.GraphFilter{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	graphs, total, err := s.store.ListGraphs(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list graphs")
		return
	}

	out := make([]*model.GraphResponse, 0, len(graphs))
	for _, g := range graphs {
		out = append(out, graphResponse(g))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"graphs": out,
		"total":  total,
	})
}

// handleGetGraph handles GET /v1/graphs/{id}.
func (s *GraphServer) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	g, err := s.store.GetGraph(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get graph")
		return
	}

	writeJSON(w, http.StatusOK, graphResponse(g))
}

// handleUpdateGraph handles PATCH /v1/graphs/{id}.
func (s *GraphServer) handleUpdateGraph(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in model.GraphUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateGraphUpdate(&in); err != nil {
		writeInputError(w, err)
		return
	}

	g, err := s.store.GetGraph(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get graph")
		return
	}

	changes := make(map[string]any)
	if in.Name != nil {
		g.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.Description != nil {
		g.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.Properties != nil {
		g.Properties = in.Properties
		changes["properties"] = in.Properties
	}

	if err := s.store.UpdateGraph(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update graph")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicGraphUpdated, g.ID, "", events.GraphUpdated{Graph: g, Changes: changes})

	writeJSON(w, http.StatusOK, graphResponse(g))
}

// handleDeleteGraph handles DELETE /v1/graphs/{id}.
// Deleting a graph cascades to all of its nodes and edges.
func (s *GraphServer) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteGraph(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "graph not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete graph")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicGraphDeleted, id, "", events.GraphDeleted{GraphID: id})

	w.WriteHeader(http.StatusNoContent)
}

// handleImportGraph handles POST /v1/graphs/import. The whole document is
// imported in a single transaction: the graph, all nodes, then all edges with
// endpoints resolved from the document's node keys.
func (s *GraphServer) handleImportGraph(w http.ResponseWriter, r *http.Request) {
	var in model.GraphInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateGraphInput(&in); err != nil {
		writeInputError(w, err)
		return
	}

	g, err := s.importGraph(r.Context(), &in)
	if err != nil {
		if writeInputError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to import graph")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicGraphImported, g.ID, "", events.GraphImported{
		Graph:     g,
		NodeCount: g.NodeCount,
		EdgeCount: g.EdgeCount,
	})

	writeJSON(w, http.StatusCreated, graphResponse(g))
}

// importGraph creates a graph with all of its nodes and edges atomically.
func (s *GraphServer) importGraph(ctx context.Context, in *model.GraphInput) (*model.Graph, error) {
	name := in.Name
	if name == "" {
		name = model.DefaultGraphName
	}

	graphID, err := idgen.Generate(idgen.GraphPrefix)
	if err != nil {
		return nil, fmt.Errorf("generating graph id: %w", err)
	}

	now := time.Now().UTC()
	g := &model.Graph{
		ID:          graphID,
		Name:        name,
		Description: in.Description,
		Properties:  in.Properties,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.CreateGraph(ctx, g); err != nil {
			return fmt.Errorf("creating graph: %w", err)
		}

		// User-facing node key -> generated record ID, for edge endpoints.
		idByKey := make(map[string]string, len(in.Nodes))
		for _, nd := range in.Nodes {
			nodeID, err := idgen.Generate(idgen.NodePrefix)
			if err != nil {
				return fmt.Errorf("generating node id: %w", err)
			}
			x, _ := model.NumericFromFloat(nd.X)
			y, _ := model.NumericFromFloat(nd.Y)
			node := &model.Node{
				ID:        nodeID,
				GraphID:   graphID,
				NodeID:    nd.ID,
				Label:     nd.Label,
				X:         x,
				Y:         y,
				Style:     nd.Style,
				Data:      nd.Data,
				CreatedAt: now,
			}
			if err := tx.CreateNode(ctx, node); err != nil {
				return fmt.Errorf("creating node %q: %w", nd.ID, err)
			}
			idByKey[nd.ID] = nodeID
		}

		for _, ed := range in.Edges {
			edgeID, err := idgen.Generate(idgen.EdgePrefix)
			if err != nil {
				return fmt.Errorf("generating edge id: %w", err)
			}
			weight, _ := model.NumericFromFloat(ed.Weight)
			edge := &model.Edge{
				ID:           edgeID,
				GraphID:      graphID,
				EdgeID:       ed.ID,
				SourceNodeID: idByKey[ed.Source],
				TargetNodeID: idByKey[ed.Target],
				Label:        ed.Label,
				Weight:       weight,
				Style:        ed.Style,
				Data:         ed.Data,
				CreatedAt:    now,
			}
			if err := tx.CreateEdge(ctx, edge); err != nil {
				return fmt.Errorf("creating edge %s -> %s: %w", ed.Source, ed.Target, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, inputError("import contains conflicting records")
		}
		return nil, err
	}

	g.NodeCount = len(in.Nodes)
	g.EdgeCount = len(in.Edges)
	return g, nil
}

// handleExportGraph handles GET /v1/graphs/{id}/export.
func (s *GraphServer) handleExportGraph(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	export, err := s.store.ExportGraph(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export graph")
		return
	}

	writeJSON(w, http.StatusOK, export)
}

// handleGetEvents handles GET /v1/graphs/{id}/events.
func (s *GraphServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	evts, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if evts == nil {
		evts = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}
