// internal/models/schema.go
package models

// ColumnDescriptor describes one column as reported by information_schema.
type ColumnDescriptor struct {
	Name     string `json:"column_name"`
	DataType string `json:"data_type"`
	Nullable bool   `json:"is_nullable"`
}

// TableDescriptor describes one table with its columns in ordinal order.
type TableDescriptor struct {
	Name    string             `json:"table_name"`
	Columns []ColumnDescriptor `json:"columns"`
}

// SchemaDescriptor lists tables in introspection order. A slice rather than
// a map so the flattened description is stable between requests.
type SchemaDescriptor []TableDescriptor
