// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
)

// LoadRegistry reads a task registry from a JSON file. Most deployments use
// the built-in DefaultRegistry; the file form exists for overriding schemas
// without a rebuild.
func LoadRegistry(path string) (*TaskRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TaskRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// DefaultRegistry describes the API tasks this service exposes. Handlers
// validate incoming request bodies against these input schemas before any
// work happens.
func DefaultRegistry() *TaskRegistry {
	return &TaskRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-07-02",
		Tasks: []Task{
			{
				ID:          "nl_to_sql",
				DisplayName: "Translate question to SQL",
				Description: "Resolves a natural language question into a safe SELECT statement",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"question"},
					"properties": map[string]interface{}{
						"question": map[string]interface{}{
							"type":      "string",
							"minLength": 1,
						},
						"execute": map[string]interface{}{
							"type": "boolean",
						},
					},
				},
				OutputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"sql", "method", "valid"},
					"properties": map[string]interface{}{
						"sql":               map[string]interface{}{"type": "string"},
						"method":            map[string]interface{}{"type": "string"},
						"valid":             map[string]interface{}{"type": "boolean"},
						"explanation":       map[string]interface{}{"type": "string"},
						"original_question": map[string]interface{}{"type": "string"},
					},
				},
				ErrorCodes: []string{"EMPTY_INPUT", "INVALID_INPUT", "QUERY_EXECUTION_FAILED"},
			},
			{
				ID:          "validate_sql",
				DisplayName: "Validate SQL",
				Description: "Checks a SQL string against the read-only safety rules",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"sql"},
					"properties": map[string]interface{}{
						"sql": map[string]interface{}{
							"type":      "string",
							"minLength": 1,
						},
					},
				},
				OutputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"sql", "valid"},
					"properties": map[string]interface{}{
						"sql":   map[string]interface{}{"type": "string"},
						"valid": map[string]interface{}{"type": "boolean"},
					},
				},
				ErrorCodes: []string{"EMPTY_INPUT", "INVALID_INPUT"},
			},
			{
				ID:          "suggest_queries",
				DisplayName: "Suggest questions",
				Description: "Returns starter questions, optionally narrowed by a context string",
				InputSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"context": map[string]interface{}{
							"type": "string",
						},
					},
				},
				OutputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"suggestions"},
					"properties": map[string]interface{}{
						"suggestions": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "string"},
						},
					},
				},
				ErrorCodes: []string{"INVALID_INPUT"},
			},
			{
				ID:          "run_query",
				DisplayName: "Execute SQL",
				Description: "Runs a sanitized SELECT statement and returns tabular results",
				InputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"sql"},
					"properties": map[string]interface{}{
						"sql": map[string]interface{}{
							"type":      "string",
							"minLength": 1,
						},
					},
				},
				OutputSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"columns", "rows", "row_count"},
					"properties": map[string]interface{}{
						"columns":   map[string]interface{}{"type": "array"},
						"rows":      map[string]interface{}{"type": "array"},
						"row_count": map[string]interface{}{"type": "integer"},
						"chart":     map[string]interface{}{"type": "string"},
					},
				},
				ErrorCodes: []string{"EMPTY_INPUT", "UNSAFE_QUERY", "QUERY_EXECUTION_FAILED"},
			},
		},
	}
}
