package server

import "github.com/groblegark/graphd/internal/model"

// graphResponse shapes a persisted graph for JSON output.
func graphResponse(g *model.Graph) *model.GraphResponse {
	return &model.GraphResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		Properties:  g.Properties,
		NodeCount:   g.NodeCount,
		EdgeCount:   g.EdgeCount,
	}
}

// nodeResponse shapes a persisted node for JSON output. Stored decimals are
// converted back to floats.
func nodeResponse(n *model.Node) *model.NodeResponse {
	return &model.NodeResponse{
		ID:        n.ID,
		GraphID:   n.GraphID,
		NodeID:    n.NodeID,
		Label:     n.Label,
		X:         model.FloatFromNumeric(n.X),
		Y:         model.FloatFromNumeric(n.Y),
		Style:     n.Style,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
}

// edgeResponse shapes a persisted edge for JSON output.
func edgeResponse(e *model.Edge) *model.EdgeResponse {
	return &model.EdgeResponse{
		ID:           e.ID,
		GraphID:      e.GraphID,
		EdgeID:       e.EdgeID,
		SourceNodeID: e.SourceNodeID,
		TargetNodeID: e.TargetNodeID,
		Label:        e.Label,
		Weight:       model.FloatFromNumeric(e.Weight),
		Style:        e.Style,
		Data:         e.Data,
		CreatedAt:    e.CreatedAt,
	}
}
