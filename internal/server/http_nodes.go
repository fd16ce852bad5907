package server

import (
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

// handleCreateNode handles POST /v1/graphs/{id}/nodes.
func (s *GraphServer) handleCreateNode(w http.ResponseWriter, r *http.Request) {
	graphID := r.PathValue("id")

	var in model.NodeCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateNodeCreate(&in); err != nil {
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

	id, err := idgen.Generate(idgen.NodePrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}

	x, _ := model.NumericFromFloat(in.X)
	y, _ := model.NumericFromFloat(in.Y)
	node := &model.Node{
		ID:        id,
		GraphID:   graphID,
		NodeID:    in.NodeID,
		Label:     in.Label,
		X:         x,
		Y:         y,
		Style:     in.Style,
		Data:      in.Data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateNode(r.Context(), node); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "node_id already exists in graph")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create node")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicNodeCreated, graphID, "", events.NodeCreated{Node: node})

	writeJSON(w, http.StatusCreated, nodeResponse(node))
}

// handleListNodes handles GET /v1/graphs/{id}/nodes.
func (s *GraphServer) handleListNodes(w http.ResponseWriter, r *http.Request) {
	graphID := r.PathValue("id")

	if _, err := s.store.GetGraph(r.Context(), graphID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "graph not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get graph")
		return
	}

	nodes, err := s.store.ListNodes(r.Context(), graphID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list nodes")
		return
	}

	out := make([]*model.NodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeResponse(n))
	}

	writeJSON(w, http.StatusOK, map[string]any{"nodes": out})
}

// handleGetNode handles GET /v1/nodes/{id}.
func (s *GraphServer) handleGetNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	node, err := s.store.GetNode(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get node")
		return
	}

	writeJSON(w, http.StatusOK, nodeResponse(node))
}

// handleUpdateNode handles PATCH /v1/nodes/{id}.
func (s *GraphServer) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var in model.NodeUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := model.ValidateNodeUpdate(&in); err != nil {
		writeInputError(w, err)
		return
	}

	node, err := s.store.GetNode(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get node")
		return
	}

	changes := make(map[string]any)
	if in.Label != nil {
		node.Label = *in.Label
		changes["label"] = *in.Label
	}
	if in.X != nil {
		node.X, _ = model.NumericFromFloat(in.X)
		changes["x"] = *in.X
	}
	if in.Y != nil {
		node.Y, _ = model.NumericFromFloat(in.Y)
		changes["y"] = *in.Y
	}
	if in.Style != nil {
		node.Style = in.Style
		changes["style"] = in.Style
	}
	if in.Data != nil {
		node.Data = in.Data
		changes["data"] = in.Data
	}

	if err := s.store.UpdateNode(r.Context(), node); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "node not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update node")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicNodeUpdated, node.GraphID, "", events.NodeUpdated{Node: node, Changes: changes})

	writeJSON(w, http.StatusOK, nodeResponse(node))
}

// handleDeleteNode handles DELETE /v1/nodes/{id}.
// Deleting a node cascades to all edges that reference it.
func (s *GraphServer) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	node, err := s.store.GetNode(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get node")
		return
	}

	if err := s.store.DeleteNode(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "node not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete node")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicNodeDeleted, node.GraphID, "", events.NodeDeleted{
		GraphID: node.GraphID,
		NodeID:  node.ID,
	})

	w.WriteHeader(http.StatusNoContent)
}
