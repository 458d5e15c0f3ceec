// internal/charts/charts_test.go
package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sql-dashboard/internal/models"
)

func result(columns []string, rows [][]interface{}) *models.QueryResult {
	return &models.QueryResult{
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name   string
		result *models.QueryResult
		want   string
	}{
		{
			name: "single row single number is a metric",
			result: result(
				[]string{"total_revenue"},
				[][]interface{}{{float64(15234.50)}},
			),
			want: ChartMetric,
		},
		{
			name: "category plus number is a bar chart",
			result: result(
				[]string{"category", "total_sales"},
				[][]interface{}{
					{"Electronics", float64(3200)},
					{"Furniture", float64(560)},
				},
			),
			want: ChartBar,
		},
		{
			name: "time column plus number is a line chart",
			result: result(
				[]string{"sale_date", "daily_total"},
				[][]interface{}{
					{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), float64(1200)},
					{time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), float64(900)},
				},
			),
			want: ChartLine,
		},
		{
			name: "date-named string column counts as temporal",
			result: result(
				[]string{"sale_date", "daily_total"},
				[][]interface{}{
					{"2024-01-15", float64(1200)},
					{"2024-01-16", float64(900)},
				},
			),
			want: ChartLine,
		},
		{
			name: "two numeric columns are a scatter plot",
			result: result(
				[]string{"price", "quantity"},
				[][]interface{}{
					{float64(999.99), int64(2)},
					{float64(149.50), int64(5)},
				},
			),
			want: ChartScatter,
		},
		{
			name: "text only falls back to table",
			result: result(
				[]string{"product_name", "region"},
				[][]interface{}{
					{"Laptop", "North"},
					{"Phone", "South"},
				},
			),
			want: ChartTable,
		},
		{
			name: "single numeric column across many rows is a scatter miss, table",
			result: result(
				[]string{"price"},
				[][]interface{}{
					{float64(999.99)},
					{float64(149.50)},
				},
			),
			want: ChartTable,
		},
		{
			name: "bar wins over line when both categorical and temporal present",
			result: result(
				[]string{"region", "sale_date", "total"},
				[][]interface{}{
					{"North", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), float64(1200)},
					{"South", time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), float64(800)},
				},
			),
			want: ChartBar,
		},
		{
			name:   "empty result",
			result: result([]string{"id"}, nil),
			want:   ChartTable,
		},
		{
			name:   "nil result",
			result: nil,
			want:   ChartTable,
		},
		{
			name: "single row with one number is a metric even alongside text",
			result: result(
				[]string{"region", "total"},
				[][]interface{}{{"North", float64(4200)}},
			),
			want: ChartMetric,
		},
		{
			name: "nil cells are skipped when classifying",
			result: result(
				[]string{"amount"},
				[][]interface{}{{nil}, {float64(10)}, {float64(20)}},
			),
			want: ChartTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.result))
		})
	}
}
