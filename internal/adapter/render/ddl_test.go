package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemalens/schemalens/internal/domain"
)

func ordersSchema() domain.TableSchema {
	return domain.TableSchema{
		Name: "Orders",
		Columns: []domain.Column{
			{Name: "ID", DataType: "BIGINT", IsPrimaryKey: true, IsIdentity: true},
			{Name: "total", DataType: "numeric(10,2)"},
			{Name: "customer_id", DataType: "int", IsNullable: true, IsForeignKey: true,
				ReferencedTable: "Customers", ReferencedColumn: "id"},
		},
	}
}

func TestCreateTable(t *testing.T) {
	got := CreateTable(ordersSchema())

	want := "create table orders (" +
		"id bigint generated always as identity primary key, " +
		"total numeric(10,2) not null, " +
		"customer_id int references customers(id))"
	assert.Equal(t, want, got)
}

func TestCreateTable_Deterministic(t *testing.T) {
	assert.Equal(t, CreateTable(ordersSchema()), CreateTable(ordersSchema()))
}

func TestDatabase(t *testing.T) {
	tables := []domain.TableSchema{
		{Name: "a", Columns: []domain.Column{{Name: "x", DataType: "int", IsNullable: true}}},
		{Name: "b", Columns: []domain.Column{{Name: "y", DataType: "text", IsNullable: true}}},
	}

	got := Database(tables)
	assert.Equal(t, "create table a (x int);\ncreate table b (y text);", got)
}
