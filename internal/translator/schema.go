// internal/translator/schema.go
package translator

import (
	"fmt"
	"strings"

	"sql-dashboard/internal/models"
)

// DescribeSchema flattens table metadata into the text block supplied to
// the remote model as prompt context. Tables appear in descriptor order.
func DescribeSchema(schema models.SchemaDescriptor) string {
	var blocks []string

	for _, table := range schema {
		defs := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			def := fmt.Sprintf("%s (%s)", col.Name, col.DataType)
			if !col.Nullable {
				def += " NOT NULL"
			}
			defs = append(defs, def)
		}
		blocks = append(blocks, fmt.Sprintf("Table: %s\nColumns: %s", table.Name, strings.Join(defs, ", ")))
	}

	return strings.Join(blocks, "\n\n")
}
