package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/internal/domain"
	"github.com/schemalens/schemalens/internal/port"
)

// SQLiteIntrospector reads schemas from a SQLite database file via the
// sqlite_master catalog and table PRAGMAs.
type SQLiteIntrospector struct {
	db *sql.DB
}

// NewSQLiteIntrospector opens the database file and verifies it.
func NewSQLiteIntrospector(dsn string) (*SQLiteIntrospector, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &SQLiteIntrospector{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteIntrospector) Close() error {
	return s.db.Close()
}

// ListTables returns the user tables, excluding SQLite internals.
func (s *SQLiteIntrospector) ListTables(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM sqlite_master
	          WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	          ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
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

// Introspect returns the ordered column records of one table. PRAGMAs cannot
// be parameterized, so the table name is quoted inline.
func (s *SQLiteIntrospector) Introspect(ctx context.Context, table string) (*domain.TableSchema, error) {
	quoted := quoteIdent(table)

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoted))
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	defer rows.Close()

	schema := &domain.TableSchema{Name: table}
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, dataType   string
			defaultValue     sql.NullString
		)
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		schema.Columns = append(schema.Columns, domain.Column{
			Table:        table,
			Name:         name,
			DataType:     dataType,
			IsNullable:   notNull == 0 && pk == 0,
			IsPrimaryKey: pk > 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("%w: %s", port.ErrSchemaNotFound, table)
	}

	if err := s.markForeignKeys(ctx, quoted, schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// markForeignKeys annotates columns listed by PRAGMA foreign_key_list.
func (s *SQLiteIntrospector) markForeignKeys(ctx context.Context, quoted string, schema *domain.TableSchema) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", quoted))
	if err != nil {
		return fmt.Errorf("foreign keys of %s: %w", schema.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, seq                      int
			refTable, from               string
			to                           sql.NullString
			onUpdate, onDelete, matching string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &matching); err != nil {
			return fmt.Errorf("scan foreign key: %w", err)
		}
		for i := range schema.Columns {
			if schema.Columns[i].Name == from {
				schema.Columns[i].IsForeignKey = true
				schema.Columns[i].ReferencedTable = refTable
				schema.Columns[i].ReferencedColumn = to.String
			}
		}
	}
	return rows.Err()
}

// IntrospectAll returns the schemas of every user table.
func (s *SQLiteIntrospector) IntrospectAll(ctx context.Context) ([]domain.TableSchema, error) {
	return introspectAll(ctx, s)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
