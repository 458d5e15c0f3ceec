// internal/history/history.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sql-dashboard/internal/common/config"
	"sql-dashboard/internal/common/database"
	"sql-dashboard/internal/common/logger"
	"sql-dashboard/internal/models"
)

// Recorder keeps a capped list of resolved questions in Redis. History is
// best-effort; a Redis outage must never fail a translation.
type Recorder struct {
	redis  *database.RedisClient
	key    string
	max    int64
	logger logger.Logger
}

func NewRecorder(redis *database.RedisClient, cfg config.HistoryConfig, log logger.Logger) *Recorder {
	return &Recorder{
		redis: redis,
		key:   cfg.Key,
		max:   int64(cfg.MaxSize),
		logger: log.With(map[string]interface{}{
			"component": "history",
		}),
	}
}

// Record prepends the entry and trims the list to the configured size.
func (r *Recorder) Record(ctx context.Context, question, sql string, method models.ResolveMethod) error {
	entry := models.QueryHistoryEntry{
		Timestamp: time.Now().UTC(),
		Question:  question,
		SQL:       sql,
		Method:    method,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	if err := r.redis.LPush(ctx, r.key, payload); err != nil {
		return fmt.Errorf("push history entry: %w", err)
	}
	if err := r.redis.LTrim(ctx, r.key, 0, r.max-1); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return nil
}

// Recent returns the newest entries, most recent first. Entries that fail
// to decode are skipped with a warning.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.QueryHistoryEntry, error) {
	if limit <= 0 || int64(limit) > r.max {
		limit = int(r.max)
	}

	raw, err := r.redis.LRange(ctx, r.key, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]models.QueryHistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.QueryHistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			r.logger.Warn("Skipping undecodable history entry", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
