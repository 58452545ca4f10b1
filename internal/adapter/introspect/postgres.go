// Package introspect reads table structure out of live databases. Each
// adapter owns its connection and queries; the embedding core only ever sees
// the resulting column records.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/port"
)

// Open returns the introspector for a registered source driver.
func Open(driver, dsn string) (port.SchemaIntrospector, error) {
	switch driver {
	case domain.DriverPostgres:
		return NewPostgresIntrospector(dsn)
	case domain.DriverSQLite:
		return NewSQLiteIntrospector(dsn)
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", port.ErrConfiguration, driver)
	}
}

// PostgresIntrospector reads schemas from the public schema of a Postgres
// database via information_schema.
type PostgresIntrospector struct {
	db *sql.DB
}

// NewPostgresIntrospector opens a connection and verifies it.
func NewPostgresIntrospector(dsn string) (*PostgresIntrospector, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open source database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping source database: %w", err)
	}

	return &PostgresIntrospector{db: db}, nil
}

// Close closes the database connection.
func (p *PostgresIntrospector) Close() error {
	return p.db.Close()
}

// ListTables returns the user tables of the public schema.
func (p *PostgresIntrospector) ListTables(ctx context.Context) ([]string, error) {
	query := `SELECT table_name
	          FROM information_schema.tables
	          WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
	          ORDER BY table_name`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Introspect returns the ordered column records of one table, with primary
// and foreign key columns marked and foreign key references resolved.
func (p *PostgresIntrospector) Introspect(ctx context.Context, table string) (*domain.TableSchema, error) {
	query := `
		SELECT c.column_name,
		       c.data_type,
		       c.is_nullable = 'YES',
		       c.is_identity = 'YES',
		       pk.column_name IS NOT NULL,
		       fk.column_name IS NOT NULL,
		       COALESCE(fk.referenced_table, ''),
		       COALESCE(fk.referenced_column, '')
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON kcu.constraint_name = tc.constraint_name
			 AND kcu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
			  AND tc.table_schema = 'public' AND tc.table_name = $1
		) pk ON pk.column_name = c.column_name
		LEFT JOIN (
			SELECT kcu.column_name,
			       ccu.table_name  AS referenced_table,
			       ccu.column_name AS referenced_column
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON kcu.constraint_name = tc.constraint_name
			 AND kcu.table_schema = tc.table_schema
			JOIN information_schema.constraint_column_usage ccu
			  ON ccu.constraint_name = tc.constraint_name
			 AND ccu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'FOREIGN KEY'
			  AND tc.table_schema = 'public' AND tc.table_name = $1
		) fk ON fk.column_name = c.column_name
		WHERE c.table_schema = 'public' AND c.table_name = $1
		ORDER BY c.ordinal_position`

	rows, err := p.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	defer rows.Close()

	schema := &domain.TableSchema{Name: table}
	for rows.Next() {
		col := domain.Column{Table: table}
		if err := rows.Scan(
			&col.Name, &col.DataType, &col.IsNullable, &col.IsIdentity,
			&col.IsPrimaryKey, &col.IsForeignKey, &col.ReferencedTable, &col.ReferencedColumn,
		); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		schema.Columns = append(schema.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", port.ErrSchemaNotFound, table)
	}
	return schema, nil
}

// IntrospectAll returns the schemas of every user table.
func (p *PostgresIntrospector) IntrospectAll(ctx context.Context) ([]domain.TableSchema, error) {
	return introspectAll(ctx, p)
}

// introspectAll is the ListTables + Introspect loop shared by adapters.
func introspectAll(ctx context.Context, insp port.SchemaIntrospector) ([]domain.TableSchema, error) {
	tables, err := insp.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	schemas := make([]domain.TableSchema, 0, len(tables))
	for _, table := range tables {
		schema, err := insp.Introspect(ctx, table)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *schema)
	}
	return schemas, nil
}
