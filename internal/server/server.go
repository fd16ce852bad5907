package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/groblegark/graphd/internal/events"
	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

// GraphServer serves the graph HTTP API.
type GraphServer struct {
	store     store.Store
	publisher events.Publisher
}

// NewGraphServer returns a new GraphServer backed by the given store and publisher.
func NewGraphServer(s store.Store, p events.Publisher) *GraphServer {
	return &GraphServer{
		store:     s,
		publisher: p,
	}
}

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *GraphServer) recordAndPublish(ctx context.Context, topic, graphID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "graph_id", graphID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:   topic,
		GraphID: graphID,
		Actor:   actor,
		Payload: payload,
	}); err != nil {
		slog.Warn("failed to record event", "topic", topic, "graph_id", graphID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "graph_id", graphID, "error", err)
	}
}

// inputError indicates invalid user input.
// The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
