// internal/server/handlers.go
package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"sql-dashboard/internal/charts"
	stderrors "sql-dashboard/internal/common/errors"
	"sql-dashboard/internal/common/metrics"
	"sql-dashboard/internal/models"
	"sql-dashboard/internal/suggest"
	"sql-dashboard/internal/translator"
)

// ==========================
// TRANSLATION
// ==========================

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req models.TranslateRequest
	if stdErr := s.decodeAndValidate(r, "nl_to_sql", &req); stdErr != nil {
		metrics.TranslationFailures.WithLabelValues(string(stdErr.Code)).Inc()
		s.writeError(w, stdErr)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		metrics.TranslationFailures.WithLabelValues(string(stderrors.ErrCodeEmptyInput)).Inc()
		s.writeError(w, stderrors.NewEmptyInputError("question"))
		return
	}

	ctx := r.Context()

	// Schema context only feeds the remote tier; a failed introspection
	// degrades to resolution without it.
	schema, err := s.db.IntrospectSchema(ctx)
	if err != nil {
		s.logger.Warn("schema introspection failed, resolving without schema context", map[string]interface{}{
			"error": err.Error(),
		})
		schema = nil
	}

	start := time.Now()
	resolved := s.resolver.Resolve(ctx, question, schema)
	metrics.TranslationsTotal.WithLabelValues(string(resolved.Method)).Inc()
	metrics.TranslationDuration.WithLabelValues(string(resolved.Method)).Observe(time.Since(start).Seconds())

	resp := models.TranslateResponse{
		SQL:              resolved.SQL,
		Method:           resolved.Method,
		Valid:            translator.Validate(resolved.SQL),
		Explanation:      translator.Explain(resolved.SQL),
		OriginalQuestion: question,
	}

	if err := s.history.Record(ctx, question, resolved.SQL, resolved.Method); err != nil {
		s.logger.Warn("history record failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if req.Execute {
		result, err := s.db.RunQuery(ctx, resolved.SQL)
		if err != nil {
			metrics.QueriesExecutedTotal.WithLabelValues("error").Inc()
			s.writeError(w, stderrors.NewQueryExecutionFailedError(err))
			return
		}
		metrics.QueriesExecutedTotal.WithLabelValues("success").Inc()
		resp.Result = result
		resp.Chart = charts.Recommend(result)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// ==========================
// VALIDATION
// ==========================

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRequest
	if stdErr := s.decodeAndValidate(r, "validate_sql", &req); stdErr != nil {
		s.writeError(w, stdErr)
		return
	}

	if strings.TrimSpace(req.SQL) == "" {
		s.writeError(w, stderrors.NewEmptyInputError("sql"))
		return
	}

	s.writeJSON(w, http.StatusOK, models.ValidateResponse{
		SQL:   req.SQL,
		Valid: translator.Validate(req.SQL),
	})
}

// ==========================
// SUGGESTIONS
// ==========================

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestRequest
	if stdErr := s.decodeAndValidate(r, "suggest_queries", &req); stdErr != nil {
		s.writeError(w, stdErr)
		return
	}

	s.writeJSON(w, http.StatusOK, models.SuggestResponse{
		Suggestions: suggest.Suggestions(req.Context),
		Context:     req.Context,
	})
}

// ==========================
// DIRECT EXECUTION
// ==========================

func (s *Server) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	var req models.RunQueryRequest
	if stdErr := s.decodeAndValidate(r, "run_query", &req); stdErr != nil {
		s.writeError(w, stdErr)
		return
	}

	if strings.TrimSpace(req.SQL) == "" {
		s.writeError(w, stderrors.NewEmptyInputError("sql"))
		return
	}

	sanitized, err := translator.Sanitize(req.SQL)
	if err != nil {
		metrics.UnsafeQueriesTotal.Inc()
		s.writeError(w, stderrors.NewUnsafeQueryError(err))
		return
	}

	result, err := s.db.RunQuery(r.Context(), sanitized)
	if err != nil {
		metrics.QueriesExecutedTotal.WithLabelValues("error").Inc()
		s.writeError(w, stderrors.NewQueryExecutionFailedError(err))
		return
	}
	metrics.QueriesExecutedTotal.WithLabelValues("success").Inc()

	s.writeJSON(w, http.StatusOK, models.RunQueryResponse{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.RowCount,
		Chart:    charts.Recommend(result),
	})
}

// ==========================
// SCHEMA AND HISTORY
// ==========================

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := s.db.IntrospectSchema(r.Context())
	if err != nil {
		s.writeError(w, stderrors.NewSchemaIntrospectionFailedError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, models.SchemaResponse{
		Tables:      schema,
		Description: translator.DescribeSchema(schema),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, stderrors.NewInvalidInputError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, stderrors.NewInternalError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, models.HistoryResponse{Entries: entries})
}

// ==========================
// LIVENESS
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}
