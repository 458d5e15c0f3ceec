// internal/models/wire.go
package models

// Request/response records for the HTTP API. Flat structures, no streaming.

type TranslateRequest struct {
	Question string `json:"question"`
	Execute  bool   `json:"execute,omitempty"`
}

type TranslateResponse struct {
	SQL              string        `json:"sql"`
	Method           ResolveMethod `json:"method"`
	Valid            bool          `json:"valid"`
	Explanation      string        `json:"explanation"`
	OriginalQuestion string        `json:"original_question"`
	Result           *QueryResult  `json:"result,omitempty"`
	Chart            string        `json:"chart,omitempty"`
}

type ValidateRequest struct {
	SQL string `json:"sql"`
}

type ValidateResponse struct {
	SQL   string `json:"sql"`
	Valid bool   `json:"valid"`
}

type SuggestRequest struct {
	Context string `json:"context,omitempty"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
	Context     string   `json:"context,omitempty"`
}

type RunQueryRequest struct {
	SQL string `json:"sql"`
}

type RunQueryResponse struct {
	Columns  []string        `json:"columns"`
	Rows     [][]interface{} `json:"rows"`
	RowCount int             `json:"row_count"`
	Chart    string          `json:"chart"`
}

type SchemaResponse struct {
	Tables      SchemaDescriptor `json:"tables"`
	Description string           `json:"description"`
}

type HistoryResponse struct {
	Entries []QueryHistoryEntry `json:"entries"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
