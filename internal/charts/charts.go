// internal/charts/charts.go
package charts

import (
	"strings"
	"time"

	"sql-dashboard/internal/models"
)

// Chart kinds recommended for a result set. The service never renders
// anything; clients map these names onto their own plotting layer.
const (
	ChartMetric  = "metric"
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartScatter = "scatter"
	ChartTable   = "table"
)

type columnKind int

const (
	kindCategorical columnKind = iota
	kindNumeric
	kindTemporal
)

// Recommend picks a chart type from the shape of a result set. Decision
// order matters: a single-row single-number result is a metric card even
// though it would also satisfy later branches.
func Recommend(result *models.QueryResult) string {
	if result == nil || result.RowCount == 0 || len(result.Columns) == 0 {
		return ChartTable
	}

	var numeric, categorical, temporal int
	for i, name := range result.Columns {
		switch classifyColumn(name, result.Rows, i) {
		case kindNumeric:
			numeric++
		case kindTemporal:
			temporal++
		default:
			categorical++
		}
	}

	switch {
	case result.RowCount == 1 && numeric == 1:
		return ChartMetric
	case categorical >= 1 && numeric >= 1:
		return ChartBar
	case temporal >= 1 && numeric >= 1:
		return ChartLine
	case numeric >= 2:
		return ChartScatter
	default:
		return ChartTable
	}
}

// classifyColumn inspects the first non-nil value in the column. A string
// column whose name mentions "date" is treated as temporal, matching how
// date columns usually arrive as formatted text.
func classifyColumn(name string, rows [][]interface{}, idx int) columnKind {
	for _, row := range rows {
		if idx >= len(row) || row[idx] == nil {
			continue
		}
		switch row[idx].(type) {
		case int, int32, int64, float32, float64:
			return kindNumeric
		case time.Time:
			return kindTemporal
		case string:
			if strings.Contains(strings.ToLower(name), "date") {
				return kindTemporal
			}
			return kindCategorical
		default:
			return kindCategorical
		}
	}
	return kindCategorical
}
