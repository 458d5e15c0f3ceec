// internal/models/query.go
package models

import "time"

// ResolveMethod identifies which resolution tier produced a SQL query.
type ResolveMethod string

const (
	MethodPattern   ResolveMethod = "pattern"
	MethodRuleBased ResolveMethod = "rule-based"
	MethodLLM       ResolveMethod = "llm"
	MethodError     ResolveMethod = "error"
)

// ResolvedQuery is the immutable per-request result of query resolution.
type ResolvedQuery struct {
	SQL    string        `json:"sql"`
	Method ResolveMethod `json:"method"`
}

// QueryResult is a generic tabular result of a read-only query.
type QueryResult struct {
	Columns  []string        `json:"columns"`
	Rows     [][]interface{} `json:"rows"`
	RowCount int             `json:"row_count"`
}

// QueryHistoryEntry records one translated question. Append-only, capped.
type QueryHistoryEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Question  string        `json:"question"`
	SQL       string        `json:"sql"`
	Method    ResolveMethod `json:"method"`
}
