// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/graphd/internal/model"
	"github.com/groblegark/graphd/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateGraph(ctx context.Context, g *model.Graph) error {
	return queryCreateGraph(ctx, s.db, g)
}

func (s *PostgresStore) GetGraph(ctx context.Context, id string) (*model.Graph, error) {
	return queryGetGraph(ctx, s.db, id)
}

func (s *PostgresStore) ListGraphs(ctx context.Context, filter model.GraphFilter) ([]*model.Graph, int, error) {
	return queryListGraphs(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateGraph(ctx context.Context, g *model.Graph) error {
	return queryUpdateGraph(ctx, s.db, g)
}

func (s *PostgresStore) DeleteGraph(ctx context.Context, id string) error {
	return queryDeleteGraph(ctx, s.db, id)
}

func (s *PostgresStore) CreateNode(ctx context.Context, n *model.Node) error {
	return queryCreateNode(ctx, s.db, n)
}

func (s *PostgresStore) GetNode(ctx context.Context, id string) (*model.Node, error) {
	return queryGetNode(ctx, s.db, id)
}

func (s *PostgresStore) GetNodeByKey(ctx context.Context, graphID, nodeKey string) (*model.Node, error) {
	return queryGetNodeByKey(ctx, s.db, graphID, nodeKey)
}

func (s *PostgresStore) ListNodes(ctx context.Context, graphID string) ([]*model.Node, error) {
	return queryListNodes(ctx, s.db, graphID)
}

func (s *PostgresStore) UpdateNode(ctx context.Context, n *model.Node) error {
	return queryUpdateNode(ctx, s.db, n)
}

func (s *PostgresStore) DeleteNode(ctx context.Context, id string) error {
	return queryDeleteNode(ctx, s.db, id)
}

func (s *PostgresStore) CreateEdge(ctx context.Context, e *model.Edge) error {
	return queryCreateEdge(ctx, s.db, e)
}

func (s *PostgresStore) GetEdge(ctx context.Context, id string) (*model.Edge, error) {
	return queryGetEdge(ctx, s.db, id)
}

func (s *PostgresStore) ListEdges(ctx context.Context, graphID string) ([]*model.Edge, error) {
	return queryListEdges(ctx, s.db, graphID)
}

func (s *PostgresStore) UpdateEdge(ctx context.Context, e *model.Edge) error {
	return queryUpdateEdge(ctx, s.db, e)
}

func (s *PostgresStore) DeleteEdge(ctx context.Context, id string) error {
	return queryDeleteEdge(ctx, s.db, id)
}

func (s *PostgresStore) ExportGraph(ctx context.Context, graphID string) (*model.GraphExport, error) {
	return queryExportGraph(ctx, s.db, graphID)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*model.Stats, error) {
	return queryGetStats(ctx, s.db)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) GetEvents(ctx context.Context, graphID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.db, graphID)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateGraph(ctx context.Context, g *model.Graph) error {
	return queryCreateGraph(ctx, s.tx, g)
}

func (s *txStore) GetGraph(ctx context.Context, id string) (*model.Graph, error) {
	return queryGetGraph(ctx, s.tx, id)
}

func (s *txStore) ListGraphs(ctx context.Context, filter model.GraphFilter) ([]*model.Graph, int, error) {
	return queryListGraphs(ctx, s.tx, filter)
}

func (s *txStore) UpdateGraph(ctx context.Context, g *model.Graph) error {
	return queryUpdateGraph(ctx, s.tx, g)
}

func (s *txStore) DeleteGraph(ctx context.Context, id string) error {
	return queryDeleteGraph(ctx, s.tx, id)
}

func (s *txStore) CreateNode(ctx context.Context, n *model.Node) error {
	return queryCreateNode(ctx, s.tx, n)
}

func (s *txStore) GetNode(ctx context.Context, id string) (*model.Node, error) {
	return queryGetNode(ctx, s.tx, id)
}

func (s *txStore) GetNodeByKey(ctx context.Context, graphID, nodeKey string) (*model.Node, error) {
	return queryGetNodeByKey(ctx, s.tx, graphID, nodeKey)
}

func (s *txStore) ListNodes(ctx context.Context, graphID string) ([]*model.Node, error) {
	return queryListNodes(ctx, s.tx, graphID)
}

func (s *txStore) UpdateNode(ctx context.Context, n *model.Node) error {
	return queryUpdateNode(ctx, s.tx, n)
}

func (s *txStore) DeleteNode(ctx context.Context, id string) error {
	return queryDeleteNode(ctx, s.tx, id)
}

func (s *txStore) CreateEdge(ctx context.Context, e *model.Edge) error {
	return queryCreateEdge(ctx, s.tx, e)
}

func (s *txStore) GetEdge(ctx context.Context, id string) (*model.Edge, error) {
	return queryGetEdge(ctx, s.tx, id)
}

func (s *txStore) ListEdges(ctx context.Context, graphID string) ([]*model.Edge, error) {
	return queryListEdges(ctx, s.tx, graphID)
}

func (s *txStore) UpdateEdge(ctx context.Context, e *model.Edge) error {
	return queryUpdateEdge(ctx, s.tx, e)
}

func (s *txStore) DeleteEdge(ctx context.Context, id string) error {
	return queryDeleteEdge(ctx, s.tx, id)
}

func (s *txStore) ExportGraph(ctx context.Context, graphID string) (*model.GraphExport, error) {
	return queryExportGraph(ctx, s.tx, graphID)
}

func (s *txStore) GetStats(ctx context.Context) (*model.Stats, error) {
	return queryGetStats(ctx, s.tx)
}

func (s *txStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txStore) GetEvents(ctx context.Context, graphID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.tx, graphID)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
