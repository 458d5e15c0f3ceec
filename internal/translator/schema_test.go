// internal/translator/schema_test.go
package translator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"sql-dashboard/internal/models"
)

func TestDescribeSchema(t *testing.T) {
	schema := models.SchemaDescriptor{
		{
			Name: "sales",
			Columns: []models.ColumnDescriptor{
				{Name: "id", DataType: "integer", Nullable: false},
				{Name: "product_name", DataType: "character varying", Nullable: true},
			},
		},
		{
			Name: "customers",
			Columns: []models.ColumnDescriptor{
				{Name: "id", DataType: "integer", Nullable: false},
				{Name: "age", DataType: "integer", Nullable: true},
			},
		},
	}

	expected := "Table: sales\nColumns: id (integer) NOT NULL, product_name (character varying)" +
		"\n\n" +
		"Table: customers\nColumns: id (integer) NOT NULL, age (integer)"

	assert.Equal(t, expected, DescribeSchema(schema))
}

func TestDescribeSchema_PreservesTableOrder(t *testing.T) {
	schema := models.SchemaDescriptor{
		{Name: "zebra", Columns: []models.ColumnDescriptor{{Name: "a", DataType: "text", Nullable: true}}},
		{Name: "apple", Columns: []models.ColumnDescriptor{{Name: "b", DataType: "text", Nullable: true}}},
	}

	out := DescribeSchema(schema)
	assert.Less(t, strings.Index(out, "zebra"), strings.Index(out, "apple"))
}

func TestDescribeSchema_Empty(t *testing.T) {
	assert.Equal(t, "", DescribeSchema(nil))
}
