package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/groblegark/graphd/internal/events"
	"github.com/groblegark/graphd/internal/idgen"
	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

// handleCreateEdge handles POST /v1/graphs/{id}/edges.
// Both endpoint nodes must already exist and belong to the target graph.
func (s *GraphServer) handleCreateEdge(w http.ResponseWriter, r *http.Request) {
	graphID := r.PathValue("id")

	var in model.EdgeCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateEdgeCreate(&in); err != nil {
		writeInputError(w, err)
		return
	}

	if _, err := s.store.GetGraph(r.Context(), graphID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "graph not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get graph")
		return
	}

	if err := s.checkEndpoint(r.Context(), graphID, in.SourceNodeID, "source_node_id"); err != nil {
		if !writeInputError(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to get node")
		}
		return
	}
	if err := s.checkEndpoint(r.Context(), graphID, in.TargetNodeID, "target_node_id"); err != nil {
		if !writeInputError(w, err) {
			writeError(w, http.StatusInternalServerError, "failed to get node")
		}
		return
	}

	id, err := idgen.Generate(idgen.EdgePrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	weight, _ := model.NumericFromFloat(in.Weight)
	edge := &model.Edge{
		ID:           id,
		GraphID:      graphID,
		EdgeID:       in.EdgeID,
		SourceNodeID: in.SourceNodeID,
		TargetNodeID: in.TargetNodeID,
		Label:        in.Label,
		Weight:       weight,
		Style:        in.Style,
		Data:         in.Data,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateEdge(r.Context(), edge); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Constraint check caught what the pre-check missed (endpoint
			// deleted between check and insert).
			writeError(w, http.StatusBadRequest, "edge endpoints must be nodes of the same graph")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create edge")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicEdgeCreated, graphID, "", events.EdgeCreated{Edge: edge})

	writeJSON(w, http.StatusCreated, edgeResponse(edge))
}

// checkEndpoint verifies that nodeID exists and belongs to graphID.
func (s *GraphServer) checkEndpoint(ctx context.Context, graphID, nodeID, field string) error {
	node, err := s.store.GetNode(ctx, nodeID)
	if errors.Is(err, sql.ErrNoRows) {
		return inputError(field + ": node not found")
	}
	if err != nil {
		return err
	}
	if node.GraphID != graphID {
		return inputError(field + ": node belongs to a different graph")
	}
	return nil
}

// handleListEdges handles GET /v1/graphs/{id}/edges.
func (s *GraphServer) handleListEdges(w http.ResponseWriter, r *http.Request) {
	graphID := r.PathValue("id")

	if _, err := s.store.GetGraph(r.Context(), graphID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "graph not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get graph")
		return
	}

	edges, err := s.store.ListEdges(r.Context(), graphID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list edges")
		return
	}

	out := make([]*model.EdgeResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, edgeResponse(e))
	}

	writeJSON(w, http.StatusOK, map[string]any{"edges": out})
}

// handleGetEdge handles GET /v1/edges/{id}.
func (s *GraphServer) handleGetEdge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	edge, err := s.store.GetEdge(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "edge not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get edge")
		return
	}

	writeJSON(w, http.StatusOK, edgeResponse(edge))
}

// handleUpdateEdge handles PATCH /v1/edges/{id}.
func (s *GraphServer) handleUpdateEdge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in model.EdgeUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateEdgeUpdate(&in); err != nil {
		writeInputError(w, err)
		return
	}

	edge, err := s.store.GetEdge(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "edge not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get edge")
		return
	}

	changes := make(map[string]any)
	if in.Label != nil {
		edge.Label = *in.Label
		changes["label"] = *in.Label
	}
	if in.Weight != nil {
		edge.Weight, _ = model.NumericFromFloat(in.Weight)
		changes["weight"] = *in.Weight
	}
	if in.Style != nil {
		edge.Style = in.Style
		changes["style"] = in.Style
	}
	if in.Data != nil {
		edge.Data = in.Data
		changes["data"] = in.Data
	}

	if err := s.store.UpdateEdge(r.Context(), edge); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "edge not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update edge")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicEdgeUpdated, edge.GraphID, "", events.EdgeUpdated{Edge: edge, Changes: changes})

	writeJSON(w, http.StatusOK, edgeResponse(edge))
}

// handleDeleteEdge handles DELETE /v1/edges/{id}.
func (s *GraphServer) handleDeleteEdge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	edge, err := s.store.GetEdge(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "edge not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get edge")
		return
	}

	if err := s.store.DeleteEdge(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "edge not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete edge")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicEdgeDeleted, edge.GraphID, "", events.EdgeDeleted{
		GraphID: edge.GraphID,
		EdgeID:  edge.ID,
	})

	w.WriteHeader(http.StatusNoContent)
}
