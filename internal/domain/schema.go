package domain

import "time"

// Column is one column record produced by schema introspection.
type Column struct {
	Table            string `json:"table"             db:"table_name"`
	Name             string `json:"name"              db:"column_name"`
	DataType         string `json:"data_type"         db:"data_type"`
	IsNullable       bool   `json:"is_nullable"       db:"is_nullable"`
	IsIdentity       bool   `json:"is_identity"       db:"is_identity"`
	IsPrimaryKey     bool   `json:"is_primary_key"    db:"is_primary_key"`
	IsForeignKey     bool   `json:"is_foreign_key"    db:"is_foreign_key"`
	ReferencedTable  string `json:"referenced_table,omitempty"  db:"referenced_table"`
	ReferencedColumn string `json:"referenced_column,omitempty" db:"referenced_column"`
}

// TableSchema is the structured description of a single table.
type TableSchema struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// ForeignKeyRef pairs a foreign key column with its referenced entity.
// Referenced is "table.column" when the reference is known, empty otherwise.
type ForeignKeyRef struct {
	Column     string `json:"column"`
	Referenced string `json:"referenced,omitempty"`
}

// Entities returns the table name followed by its column names, in
// introspection order.
func (t *TableSchema) Entities() []string {
	entities := make([]string, 0, len(t.Columns)+1)
	entities = append(entities, t.Name)
	for _, c := range t.Columns {
		entities = append(entities, c.Name)
	}
	return entities
}

// PrimaryKey returns the name of the first primary key column, or "" when
// the table has none.
func (t *TableSchema) PrimaryKey() string {
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			return c.Name
		}
	}
	return ""
}

// ForeignKeys returns the foreign key columns with their referenced entities.
func (t *TableSchema) ForeignKeys() []ForeignKeyRef {
	var refs []ForeignKeyRef
	for _, c := range t.Columns {
		if !c.IsForeignKey {
			continue
		}
		ref := ForeignKeyRef{Column: c.Name}
		if c.ReferencedTable != "" {
			ref.Referenced = c.ReferencedTable
			if c.ReferencedColumn != "" {
				ref.Referenced += "." + c.ReferencedColumn
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// SchemaSource is a registered database whose schemas can be introspected
// and embedded.
type SchemaSource struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Driver    string    `json:"driver"     db:"driver"` // postgres, sqlite
	DSN       string    `json:"-"          db:"dsn"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Supported source drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
