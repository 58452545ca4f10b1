package port

import (
	"context"

	"github.com/schemalens/schemalens/internal/domain"
)

// SchemaIntrospector reads table structure from a live database. The database
// connection and the introspection queries live behind this boundary; the
// embedding core only ever sees the resulting records.
type SchemaIntrospector interface {
	// ListTables returns the user table names visible to the connection.
	ListTables(ctx context.Context) ([]string, error)

	// Introspect returns the column records for a single table.
	// Returns ErrSchemaNotFound when the table does not exist.
	Introspect(ctx context.Context, table string) (*domain.TableSchema, error)

	// IntrospectAll returns the schemas of every user table.
	IntrospectAll(ctx context.Context) ([]domain.TableSchema, error)

	// Close releases the underlying connection.
	Close() error
}
