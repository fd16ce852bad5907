package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

// Column lists used for SELECT statements.
const (
	graphColumns = `id, name, description, created_at, updated_at, properties`
	nodeColumns  = `id, graph_id, node_id, label, x, y, style, data, created_at`
	edgeColumns  = `id, graph_id, edge_id, source_node_id, target_node_id, label, weight, style, data, created_at`
)

// graphCountColumns extends graphColumns with per-graph node and edge counts.
const graphCountColumns = graphColumns + `,
	(SELECT COUNT(*) FROM nodes WHERE nodes.graph_id = graphs.id) AS node_count,
	(SELECT COUNT(*) FROM edges WHERE edges.graph_id = graphs.id) AS edge_count`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapConstraintErr converts PostgreSQL integrity violations (unique,
// foreign key, check) into store.ErrConflict so callers can distinguish
// bad input from infrastructure failure.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && strings.HasPrefix(string(pqErr.Code), "23") {
		return fmt.Errorf("%w: %s", store.ErrConflict, pqErr.Message)
	}
	return err
}

func queryCreateGraph(ctx context.Context, db executor, g *model.Graph) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO graphs (id, name, description, created_at, updated_at, properties)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		g.ID,
		g.Name,
		g.Description,
		g.CreatedAt,
		g.UpdatedAt,
		jsonbBytes(g.Properties),
	)
	return mapConstraintErr(err)
}

func queryGetGraph(ctx context.Context, db executor, id string) (*model.Graph, error) {
	row := db.QueryRowContext(ctx, `SELECT `+graphCountColumns+` FROM graphs WHERE id = $1`, id)
	return scanGraphWithCounts(row)
}

func queryListGraphs(ctx context.Context, db executor, filter model.GraphFilter) ([]*model.Graph, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(name ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + graphCountColumns +
		" FROM graphs" + whereSQL + " ORDER BY " + parseSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list graphs: %w", err)
	}
	defer rows.Close()

	var graphs []*model.Graph
	var total int
	for rows.Next() {
		g, t, err := scanGraphWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan graphs: %w", err)
		}
		total = t
		graphs = append(graphs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan graphs: %w", err)
	}

	return graphs, total, nil
}

func queryUpdateGraph(ctx context.Context, db executor, g *model.Graph) error {
	err := db.QueryRowContext(ctx, `
		UPDATE graphs SET
			name = $2,
			description = $3,
			properties = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		g.ID,
		g.Name,
		g.Description,
		jsonbBytes(g.Properties),
	).Scan(&g.UpdatedAt)
	return mapConstraintErr(err)
}

func queryDeleteGraph(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM graphs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateNode(ctx context.Context, db executor, n *model.Node) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO nodes (id, graph_id, node_id, label, x, y, style, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID,
		n.GraphID,
		n.NodeID,
		n.Label,
		nullDecimalPtr(n.X),
		nullDecimalPtr(n.Y),
		jsonbBytes(n.Style),
		jsonbBytes(n.Data),
		n.CreatedAt,
	)
	return mapConstraintErr(err)
}

func queryGetNode(ctx context.Context, db executor, id string) (*model.Node, error) {
	row := db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE id = $1`, id)
	return scanNode(row)
}

func queryGetNodeByKey(ctx context.Context, db executor, graphID, nodeKey string) (*model.Node, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+nodeColumns+` FROM nodes WHERE graph_id = $1 AND node_id = $2`,
		graphID, nodeKey)
	return scanNode(row)
}

func queryListNodes(ctx context.Context, db executor, graphID string) ([]*model.Node, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+nodeColumns+` FROM nodes WHERE graph_id = $1 ORDER BY created_at ASC, id ASC`,
		graphID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNodes(rows)
}

func queryUpdateNode(ctx context.Context, db executor, n *model.Node) error {
	res, err := db.ExecContext(ctx, `
		UPDATE nodes SET
			label = $2,
			x = $3,
			y = $4,
			style = $5,
			data = $6
		WHERE id = $1`,
		n.ID,
		n.Label,
		nullDecimalPtr(n.X),
		nullDecimalPtr(n.Y),
		jsonbBytes(n.Style),
		jsonbBytes(n.Data),
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteNode(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM nodes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateEdge(ctx context.Context, db executor, e *model.Edge) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO edges (
			id, graph_id, edge_id, source_node_id, target_node_id,
			label, weight, style, data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID,
		e.GraphID,
		nullString(e.EdgeID),
		e.SourceNodeID,
		e.TargetNodeID,
		e.Label,
		nullDecimalPtr(e.Weight),
		jsonbBytes(e.Style),
		jsonbBytes(e.Data),
		e.CreatedAt,
	)
	return mapConstraintErr(err)
}

func queryGetEdge(ctx context.Context, db executor, id string) (*model.Edge, error) {
	row := db.QueryRowContext(ctx, `SELECT `+edgeColumns+` FROM edges WHERE id = $1`, id)
	return scanEdge(row)
}

func queryListEdges(ctx context.Context, db executor, graphID string) ([]*model.Edge, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+edgeColumns+` FROM edges WHERE graph_id = $1 ORDER BY created_at ASC, id ASC`,
		graphID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEdges(rows)
}

func queryUpdateEdge(ctx context.Context, db executor, e *model.Edge) error {
	res, err := db.ExecContext(ctx, `
		UPDATE edges SET
			label = $2,
			weight = $3,
			style = $4,
			data = $5
		WHERE id = $1`,
		e.ID,
		e.Label,
		nullDecimalPtr(e.Weight),
		jsonbBytes(e.Style),
		jsonbBytes(e.Data),
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteEdge(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM edges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// queryExportGraph assembles a complete graph document. Edge endpoints are
// translated from record IDs back to user-facing node keys.
func queryExportGraph(ctx context.Context, db executor, graphID string) (*model.GraphExport, error) {
	row := db.QueryRowContext(ctx, `SELECT `+graphColumns+` FROM graphs WHERE id = $1`, graphID)
	g, err := scanGraph(row)
	if err != nil {
		return nil, err
	}

	nodes, err := queryListNodes(ctx, db, graphID)
	if err != nil {
		return nil, fmt.Errorf("export: list nodes: %w", err)
	}

	edges, err := queryListEdges(ctx, db, graphID)
	if err != nil {
		return nil, fmt.Errorf("export: list edges: %w", err)
	}

	keyByID := make(map[string]string, len(nodes))
	exportNodes := make([]model.NodeData, 0, len(nodes))
	for _, n := range nodes {
		keyByID[n.ID] = n.NodeID
		exportNodes = append(exportNodes, model.NodeData{
			ID:    n.NodeID,
			Label: n.Label,
			X:     model.FloatFromNumeric(n.X),
			Y:     model.FloatFromNumeric(n.Y),
			Style: n.Style,
			Data:  n.Data,
		})
	}

	exportEdges := make([]model.EdgeData, 0, len(edges))
	for _, e := range edges {
		exportEdges = append(exportEdges, model.EdgeData{
			ID:     e.EdgeID,
			Source: keyByID[e.SourceNodeID],
			Target: keyByID[e.TargetNodeID],
			Label:  e.Label,
			Weight: model.FloatFromNumeric(e.Weight),
			Style:  e.Style,
			Data:   e.Data,
		})
	}

	return &model.GraphExport{
		Name:        g.Name,
		Description: g.Description,
		Properties:  g.Properties,
		Nodes:       exportNodes,
		Edges:       exportEdges,
	}, nil
}

func queryGetStats(ctx context.Context, db executor) (*model.Stats, error) {
	stats := &model.Stats{}
	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM graphs),
			(SELECT COUNT(*) FROM nodes),
			(SELECT COUNT(*) FROM edges)`).Scan(
		&stats.TotalGraphs,
		&stats.TotalNodes,
		&stats.TotalEdges,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, graph_id, actor, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		e.Topic, e.GraphID, e.Actor, []byte(e.Payload),
	).Scan(&e.ID, &e.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, graphID string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, graph_id, actor, payload, created_at
		FROM events
		WHERE graph_id = $1
		ORDER BY created_at ASC`,
		graphID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func parseSortClause(sort string) string {
	if sort == "" {
		return "created_at DESC"
	}
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	allowed := map[string]bool{
		"name": true, "created_at": true, "updated_at": true,
	}
	if !allowed[col] {
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
