package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/graphd/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *GraphServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/graphs", s.handleCreateGraph)
	mux.HandleFunc("GET /v1/graphs", s.handleListGraphs)
	mux.HandleFunc("GET /v1/graphs/{id}", s.handleGetGraph)
	mux.HandleFunc("PATCH /v1/graphs/{id}", s.handleUpdateGraph)
	mux.HandleFunc("DELETE /v1/graphs/{id}", s.handleDeleteGraph)
	mux.HandleFunc("POST /v1/graphs/import", s.handleImportGraph)
	mux.HandleFunc("GET /v1/graphs/{id}/export", s.handleExportGraph)
	mux.HandleFunc("GET /v1/graphs/{id}/events", s.handleGetEvents)
	mux.HandleFunc("GET /v1/graphs/{id}/nodes", s.handleListNodes)
	mux.HandleFunc("POST /v1/graphs/{id}/nodes", s.handleCreateNode)
	mux.HandleFunc("GET /v1/graphs/{id}/edges", s.handleListEdges)
	mux.HandleFunc("POST /v1/graphs/{id}/edges", s.handleCreateEdge)
	mux.HandleFunc("GET /v1/nodes/{id}", s.handleGetNode)
	mux.HandleFunc("PATCH /v1/nodes/{id}", s.handleUpdateNode)
	mux.HandleFunc("DELETE /v1/nodes/{id}", s.handleDeleteNode)
	mux.HandleFunc("GET /v1/edges/{id}", s.handleGetEdge)
	mux.HandleFunc("PATCH /v1/edges/{id}", s.handleUpdateEdge)
	mux.HandleFunc("DELETE /v1/edges/{id}", s.handleDeleteEdge)
	mux.HandleFunc("GET /v1/stats", s.handleGetStats)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, RecoveryMiddleware(mux))
}

// handleHealth handles GET /v1/health.
func (s *GraphServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetStats handles GET /v1/stats.
func (s *GraphServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// writeInputError maps validation and input errors to a 400 response, and
// reports whether the error was handled.
func writeInputError(w http.ResponseWriter, err error) bool {
	var ie inputError
	if errors.As(err, &ie) {
		writeError(w, http.StatusBadRequest, ie.Error())
		return true
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  ve.Error(),
			"fields": ve.Errors,
		})
		return true
	}
	return false
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
