package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/port"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the application tables and the pgvector extension.
// The embedding column is fixed at the configured dimension; changing the
// dimension requires re-ingesting into a fresh database.
func (s *PostgresStore) EnsureSchema(ctx context.Context, dimension int) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS sources (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			driver     TEXT NOT NULL,
			dsn        TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS schema_embeddings (
			id          UUID PRIMARY KEY,
			source_id   UUID NOT NULL,
			table_name  TEXT NOT NULL,
			schema_text TEXT NOT NULL,
			generator   TEXT NOT NULL,
			vector      vector(%d) NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dimension),
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id          UUID PRIMARY KEY,
			caller      TEXT NOT NULL,
			action      TEXT NOT NULL,
			resource    TEXT NOT NULL,
			resource_id TEXT NOT NULL,
			details     TEXT NOT NULL,
			ip          TEXT NOT NULL,
			user_agent  TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --- Sources ---

// CreateSource inserts a registered schema source and returns it with its ID.
func (s *PostgresStore) CreateSource(ctx context.Context, src *domain.SchemaSource) (*domain.SchemaSource, error) {
	src.ID = uuid.NewString()
	query := `INSERT INTO sources (id, name, driver, dsn)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at`

	if err := s.db.QueryRowContext(ctx, query, src.ID, src.Name, src.Driver, src.DSN).Scan(&src.CreatedAt); err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	return src, nil
}

// GetSource fetches one source by ID.
func (s *PostgresStore) GetSource(ctx context.Context, id string) (*domain.SchemaSource, error) {
	query := `SELECT id, name, driver, dsn, created_at FROM sources WHERE id = $1`

	var src domain.SchemaSource
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&src.ID, &src.Name, &src.Driver, &src.DSN, &src.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrSourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return &src, nil
}

// ListSources returns all registered sources, newest first.
func (s *PostgresStore) ListSources(ctx context.Context) ([]domain.SchemaSource, error) {
	query := `SELECT id, name, driver, dsn, created_at FROM sources ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.SchemaSource
	for rows.Next() {
		var src domain.SchemaSource
		if err := rows.Scan(&src.ID, &src.Name, &src.Driver, &src.DSN, &src.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// DeleteSource removes a source registration.
func (s *PostgresStore) DeleteSource(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, id)
	return err
}

// --- Audit ---

// WriteAudit persists one audit record. Satisfies middleware.AuditWriter.
func (s *PostgresStore) WriteAudit(caller, action, resource, resourceID, details, ip, userAgent string) error {
	query := `INSERT INTO audit_logs (id, caller, action, resource, resource_id, details, ip, user_agent)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.Exec(query, uuid.NewString(), caller, action, resource, resourceID, details, ip, userAgent)
	if err != nil {
		return fmt.Errorf("write audit: %w", err)
	}
	return nil
}

// ListAuditLogs returns audit logs, newest first, optionally filtered by action.
func (s *PostgresStore) ListAuditLogs(ctx context.Context, limit int, action string) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	query := `SELECT id, caller, action, resource, resource_id, details, ip, user_agent, created_at
	          FROM audit_logs`
	args := []interface{}{}
	if action != "" {
		query += ` WHERE action = $1`
		args = append(args, action)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		if err := rows.Scan(
			&l.ID, &l.Caller, &l.Action, &l.Resource, &l.ResourceID,
			&l.Details, &l.IP, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
