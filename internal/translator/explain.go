// internal/translator/explain.go
package translator

import "strings"

type explanation struct {
	term string
	text string
}

// Vocabulary order decides the order of the joined explanation, regardless
// of where the terms appear in the SQL.
var explanations = []explanation{
	{"SELECT * FROM sales", "Retrieving all sales records"},
	{"SUM(price * quantity)", "Calculating total revenue (price × quantity)"},
	{"GROUP BY", "Grouping results by specified column(s)"},
	{"ORDER BY", "Sorting results by specified column(s)"},
	{"COUNT(*)", "Counting total number of records"},
	{"AVG(", "Calculating average value"},
	{"LIMIT", "Limiting number of results returned"},
}

const explanationFallback = "This query retrieves data from the database"

// Explain returns a human-readable description of a SQL string by
// case-insensitive substring matching against a fixed vocabulary.
func Explain(sql string) string {
	upper := strings.ToUpper(sql)

	var parts []string
	for _, e := range explanations {
		if strings.Contains(upper, strings.ToUpper(e.term)) {
			parts = append(parts, e.text)
		}
	}

	if len(parts) == 0 {
		return explanationFallback
	}
	return "This query is: " + strings.Join(parts, ", ")
}
