// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sql-dashboard/internal/common/config"
	stderrors "sql-dashboard/internal/common/errors"
	"sql-dashboard/internal/common/logger"
	"sql-dashboard/internal/common/observability"
	"sql-dashboard/internal/common/validation"
	"sql-dashboard/internal/models"
	"sql-dashboard/internal/translator"
	"sql-dashboard/pkg/registry"
)

// Database is the subset of the Postgres client the API needs.
type Database interface {
	Ping(ctx context.Context) error
	RunQuery(ctx context.Context, query string) (*models.QueryResult, error)
	IntrospectSchema(ctx context.Context) (models.SchemaDescriptor, error)
}

// HistoryStore records resolved questions and reads them back.
type HistoryStore interface {
	Record(ctx context.Context, question, sql string, method models.ResolveMethod) error
	Recent(ctx context.Context, limit int) ([]models.QueryHistoryEntry, error)
}

// Server owns the HTTP API. All state is injected; nothing global.
type Server struct {
	cfg      config.ServerConfig
	resolver *translator.Resolver
	db       Database
	history  HistoryStore
	registry *registry.TaskRegistry
	obs      *observability.Observability
	logger   logger.Logger

	httpServer *http.Server
}

func New(
	cfg config.ServerConfig,
	resolver *translator.Resolver,
	db Database,
	history HistoryStore,
	reg *registry.TaskRegistry,
	obs *observability.Observability,
	log logger.Logger,
) *Server {
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		db:       db,
		history:  history,
		registry: reg,
		obs:      obs,
		logger:   log.With(map[string]interface{}{"component": "server"}),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}

	return s
}

// Routes builds the full handler tree. Exposed so tests can drive the mux
// through httptest without opening a socket.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/translate", s.withRequest("translate", http.MethodPost, s.handleTranslate))
	mux.HandleFunc("/api/validate", s.withRequest("validate", http.MethodPost, s.handleValidate))
	mux.HandleFunc("/api/suggest", s.withRequest("suggest", http.MethodPost, s.handleSuggest))
	mux.HandleFunc("/api/query", s.withRequest("query", http.MethodPost, s.handleRunQuery))
	mux.HandleFunc("/api/schema", s.withRequest("schema", http.MethodGet, s.handleSchema))
	mux.HandleFunc("/api/history", s.withRequest("history", http.MethodGet, s.handleHistory))

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{
		"addr": s.cfg.Addr(),
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// withRequest tags every request with a uuid, enforces the method, and
// records duration and status for the operation.
func (s *Server) withRequest(operation, method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		if r.Method != method {
			w.Header().Set("Allow", method)
			s.writeError(w, &stderrors.StandardError{
				Code:      stderrors.ErrCodeInvalidInput,
				Message:   "Method not allowed",
				Details:   fmt.Sprintf("use %s", method),
				Timestamp: time.Now().UTC(),
			}, http.StatusMethodNotAllowed)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		duration := time.Since(start)
		status := "success"
		if rec.status >= 400 {
			status = "error"
		}

		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), operation, status)
			s.obs.RecordRequestDuration(r.Context(), duration, operation)
		}

		s.logger.Info("request completed", map[string]interface{}{
			"request_id": requestID,
			"operation":  operation,
			"status":     rec.status,
			"duration":   duration.String(),
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// decodeAndValidate unmarshals the body twice, once as a generic document
// for schema validation and once into the typed request.
func (s *Server) decodeAndValidate(r *http.Request, taskID string, out interface{}) *stderrors.StandardError {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return stderrors.NewInvalidInputError("request body must be valid JSON")
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return stderrors.NewInvalidInputError("request body must be a JSON object")
	}

	if task := s.registry.Find(taskID); task != nil {
		result, err := validation.ValidateInput(doc, task.InputSchema)
		if err != nil {
			return stderrors.NewInternalError(err)
		}
		if !result.Valid {
			messages := result.GetErrorMessages()
			detail := "validation failed"
			if len(messages) > 0 {
				detail = messages[0]
			}
			return stderrors.NewInvalidInputError(detail)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return stderrors.NewInvalidInputError("request body does not match the expected shape")
	}

	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encoding failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, stdErr *stderrors.StandardError, statusOverride ...int) {
	status := stderrors.HTTPStatus(stdErr.Code)
	if len(statusOverride) > 0 {
		status = statusOverride[0]
	}
	s.writeJSON(w, status, models.ErrorResponse{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	})
}
