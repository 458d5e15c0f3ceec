// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TranslationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translations_total",
			Help: "Total number of question-to-SQL translations by resolution method",
		},
		[]string{"method"},
	)

	TranslationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_failures_total",
			Help: "Total number of failed translation requests by error code",
		},
		[]string{"error_code"},
	)

	TranslationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "translation_duration_seconds",
			Help: "Duration of question-to-SQL translation in seconds",
		},
		[]string{"method"},
	)

	UnsafeQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unsafe_queries_total",
			Help: "Total number of SQL strings rejected by the safety gate",
		},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_calls_total",
			Help: "Total number of remote language model calls by status",
		},
		[]string{"status"},
	)

	QueriesExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_executed_total",
			Help: "Total number of SQL queries executed against the database",
		},
		[]string{"status"},
	)
)
