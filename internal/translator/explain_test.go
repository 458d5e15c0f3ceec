// internal/translator/explain_test.go
package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected string
	}{
		{
			name:     "count query",
			sql:      "SELECT COUNT(*) FROM sales",
			expected: "This query is: Counting total number of records",
		},
		{
			name:     "all sales",
			sql:      "SELECT * FROM sales ORDER BY sale_date DESC",
			expected: "This query is: Retrieving all sales records, Sorting results by specified column(s)",
		},
		{
			name: "revenue by category uses vocabulary order",
			sql:  "SELECT category, SUM(price * quantity) as total_sales FROM sales GROUP BY category ORDER BY total_sales DESC",
			expected: "This query is: Calculating total revenue (price × quantity), " +
				"Grouping results by specified column(s), Sorting results by specified column(s)",
		},
		{
			name:     "average with limit",
			sql:      "SELECT AVG(age) FROM customers LIMIT 5",
			expected: "This query is: Calculating average value, Limiting number of results returned",
		},
		{
			name:     "case insensitive",
			sql:      "select count(*) from sales",
			expected: "This query is: Counting total number of records",
		},
		{
			name:     "nothing recognized",
			sql:      "SELECT name FROM customers",
			expected: "This query retrieves data from the database",
		},
		{
			name:     "empty input",
			sql:      "",
			expected: "This query retrieves data from the database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Explain(tt.sql))
		})
	}
}

func TestExplain_OrderIsVocabularyOrderNotSQLOrder(t *testing.T) {
	// LIMIT appears before GROUP BY in the text, the explanation still lists
	// GROUP BY first.
	sql := "SELECT 1 LIMIT 5 -- GROUP BY trailing"
	assert.Equal(t,
		"This query is: Grouping results by specified column(s), Limiting number of results returned",
		Explain(sql))
}
