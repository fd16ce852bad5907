package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	GraphCount int       `json:"graph_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// graphRecord is the payload of a "graph" record: the record ID plus the full
// document. The document portion is valid GraphInput for re-import.
type graphRecord struct {
	ID string `json:"id"`
	*model.GraphExport
}

// ExportJSONL writes every graph in the store as JSONL to w. Each graph
// record embeds the complete document with nodes and edges keyed by their
// user-facing IDs.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	graphs, _, err := s.ListGraphs(ctx, model.GraphFilter{Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list graphs: %w", err)
	}

	sort.Slice(graphs, func(i, j int) bool {
		return graphs[i].ID < graphs[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    "1",
		Type:       "header",
		Timestamp:  time.Now().UTC(),
		GraphCount: len(graphs),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, g := range graphs {
		export, err := s.ExportGraph(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("export graph %s: %w", g.ID, err)
		}
		if err := enc.Encode(record{Type: "graph", Data: graphRecord{ID: g.ID, GraphExport: export}}); err != nil {
			return fmt.Errorf("encode graph %s: %w", g.ID, err)
		}
	}

	return nil
}
