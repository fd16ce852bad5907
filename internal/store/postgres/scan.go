package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/groblegark/graphd/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanGraph scans a row containing the plain graphColumns.
func scanGraph(row scannable) (*model.Graph, error) {
	var g model.Graph
	var (
		description sql.NullString
		properties  []byte
	)
	err := row.Scan(
		&g.ID,
		&g.Name,
		&description,
		&g.CreatedAt,
		&g.UpdatedAt,
		&properties,
	)
	if err != nil {
		return nil, err
	}
	g.Description = description.String
	if len(properties) > 0 {
		g.Properties = json.RawMessage(properties)
	}
	return &g, nil
}

// scanGraphWithCounts scans graphCountColumns (graph columns plus node and
// edge counts).
func scanGraphWithCounts(row scannable) (*model.Graph, error) {
	var g model.Graph
	var (
		description sql.NullString
		properties  []byte
	)
	err := row.Scan(
		&g.ID,
		&g.Name,
		&description,
		&g.CreatedAt,
		&g.UpdatedAt,
		&properties,
		&g.NodeCount,
		&g.EdgeCount,
	)
	if err != nil {
		return nil, err
	}
	g.Description = description.String
	if len(properties) > 0 {
		g.Properties = json.RawMessage(properties)
	}
	return &g, nil
}

// scanGraphWithTotal scans a row with a leading total_count column followed
// by graphCountColumns. Used by queryListGraphs with COUNT(*) OVER().
func scanGraphWithTotal(row scannable) (*model.Graph, int, error) {
	var total int
	var g model.Graph
	var (
		description sql.NullString
		properties  []byte
	)
	err := row.Scan(
		&total,
		&g.ID,
		&g.Name,
		&description,
		&g.CreatedAt,
		&g.UpdatedAt,
		&properties,
		&g.NodeCount,
		&g.EdgeCount,
	)
	if err != nil {
		return nil, 0, err
	}
	g.Description = description.String
	if len(properties) > 0 {
		g.Properties = json.RawMessage(properties)
	}
	return &g, total, nil
}

// scanNode scans a single row into a model.Node.
// The row must contain columns in the order defined by nodeColumns.
func scanNode(row scannable) (*model.Node, error) {
	var n model.Node
	var (
		label sql.NullString
		x, y  sql.NullString
		style []byte
		data  []byte
	)
	err := row.Scan(
		&n.ID,
		&n.GraphID,
		&n.NodeID,
		&label,
		&x,
		&y,
		&style,
		&data,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Label = label.String
	if n.X, err = decimalPtr(x); err != nil {
		return nil, fmt.Errorf("scan node x: %w", err)
	}
	if n.Y, err = decimalPtr(y); err != nil {
		return nil, fmt.Errorf("scan node y: %w", err)
	}
	if len(style) > 0 {
		n.Style = json.RawMessage(style)
	}
	if len(data) > 0 {
		n.Data = json.RawMessage(data)
	}
	return &n, nil
}

// scanNodes scans multiple rows into a slice of model.Node pointers.
func scanNodes(rows *sql.Rows) ([]*model.Node, error) {
	var nodes []*model.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// scanEdge scans a single row into a model.Edge.
// The row must contain columns in the order defined by edgeColumns.
func scanEdge(row scannable) (*model.Edge, error) {
	var e model.Edge
	var (
		edgeID sql.NullString
		label  sql.NullString
		weight sql.NullString
		style  []byte
		data   []byte
	)
	err := row.Scan(
		&e.ID,
		&e.GraphID,
		&edgeID,
		&e.SourceNodeID,
		&e.TargetNodeID,
		&label,
		&weight,
		&style,
		&data,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.EdgeID = edgeID.String
	e.Label = label.String
	if e.Weight, err = decimalPtr(weight); err != nil {
		return nil, fmt.Errorf("scan edge weight: %w", err)
	}
	if len(style) > 0 {
		e.Style = json.RawMessage(style)
	}
	if len(data) > 0 {
		e.Data = json.RawMessage(data)
	}
	return &e, nil
}

// scanEdges scans multiple rows into a slice of model.Edge pointers.
func scanEdges(rows *sql.Rows) ([]*model.Edge, error) {
	var edges []*model.Edge
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		actor   sql.NullString
		payload []byte
	)
	err := row.Scan(&e.ID, &e.Topic, &e.GraphID, &actor, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.Event pointers.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// decimalPtr parses a nullable NUMERIC column into an optional decimal.
func decimalPtr(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// nullDecimalPtr converts an optional decimal to a driver-friendly value.
// NUMERIC columns accept the canonical string form.
func nullDecimalPtr(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
