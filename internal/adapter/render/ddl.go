// Package render turns introspected table schemas into canonical
// CREATE-TABLE text, the input format of the embedding tokenizer.
package render

import (
	"fmt"
	"strings"

	"github.com/schemalens/schemalens/internal/domain"
)

// CreateTable renders one table as a canonical CREATE TABLE statement:
// lowercase throughout, columns in introspection order, so the same schema
// always produces the same text.
func CreateTable(t domain.TableSchema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "create table %s (", strings.ToLower(t.Name))

	for i, col := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", strings.ToLower(col.Name), strings.ToLower(col.DataType))
		if col.IsIdentity {
			b.WriteString(" generated always as identity")
		}
		if col.IsPrimaryKey {
			b.WriteString(" primary key")
		} else if !col.IsNullable {
			b.WriteString(" not null")
		}
		if col.IsForeignKey && col.ReferencedTable != "" {
			fmt.Fprintf(&b, " references %s(%s)",
				strings.ToLower(col.ReferencedTable), strings.ToLower(col.ReferencedColumn))
		}
	}

	b.WriteString(")")
	return b.String()
}

// Database renders every table, one statement per line, semicolon-terminated.
func Database(tables []domain.TableSchema) string {
	statements := make([]string, len(tables))
	for i, t := range tables {
		statements[i] = CreateTable(t) + ";"
	}
	return strings.Join(statements, "\n")
}
