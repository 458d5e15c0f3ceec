// internal/suggest/suggest.go
package suggest

import "strings"

// defaultSuggestions are the starter questions shown to users. The list is
// static; matching rule tables guarantee each suggestion resolves without a
// remote call.
var defaultSuggestions = []string{
	"Show me all sales data",
	"What are the total sales by category?",
	"Show me sales trends over time",
	"Which region has the highest sales?",
	"Show me customer demographics",
	"What's the average age of customers?",
	"Show me top selling products",
	"What are the sales by region?",
	"Show me recent sales transactions",
	"What's the total revenue this month?",
}

// Suggestions returns starter questions, optionally narrowed by a context
// string. An empty context (or one that filters everything out) returns the
// full list.
func Suggestions(context string) []string {
	out := make([]string, len(defaultSuggestions))
	copy(out, defaultSuggestions)

	context = strings.TrimSpace(strings.ToLower(context))
	if context == "" {
		return out
	}

	filtered := make([]string, 0, len(out))
	for _, s := range out {
		if strings.Contains(strings.ToLower(s), context) {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return out
	}
	return filtered
}
