// internal/llm/client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	commonhttp "sql-dashboard/internal/common/http"
	"sql-dashboard/internal/common/logger"
	"sql-dashboard/internal/common/metrics"
)

var (
	ErrLLMTimeout    = errors.New("LLM_TIMEOUT")
	ErrLLMCallFailed = errors.New("REMOTE_CALL_FAILED")
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// Client calls an OpenAI-compatible chat completions endpoint to translate
// a question into SQL. Failures are typed so callers can treat them as a
// local miss rather than a fatal error.
type Client struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		// No client-level timeout; the per-call context bounds the request
		client: commonhttp.NewClient(0),
		logger: log.With(map[string]interface{}{
			"component": "llm-client",
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateSQL sends the schema context and question to the model and
// returns the raw SQL text. At most one logical resolution; transport
// retries stay inside the single timeout window.
func (c *Client) GenerateSQL(ctx context.Context, question, schemaContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, _ := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.buildSystemPrompt(schemaContext)},
			{Role: "user", Content: question},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Apply exponential backoff
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
				// Continue with retry
			case <-ctx.Done():
				metrics.LLMCallsTotal.WithLabelValues("timeout").Inc()
				return "", ErrLLMTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrLLMCallFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			metrics.LLMCallsTotal.WithLabelValues("timeout").Inc()
			return "", ErrLLMTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			metrics.LLMCallsTotal.WithLabelValues("timeout").Inc()
			return "", ErrLLMTimeout
		}
		metrics.LLMCallsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrLLMCallFailed, lastErr)
	}

	if resp == nil {
		metrics.LLMCallsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: no successful response after retries", ErrLLMCallFailed)
	}
	defer resp.Body.Close()

	var apiResponse chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.LLMCallsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: decode error: %v", ErrLLMCallFailed, err)
	}

	if len(apiResponse.Choices) == 0 || strings.TrimSpace(apiResponse.Choices[0].Message.Content) == "" {
		metrics.LLMCallsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: empty completion", ErrLLMCallFailed)
	}

	sql := strings.TrimSpace(apiResponse.Choices[0].Message.Content)

	c.logger.Info("SQL generation completed", map[string]interface{}{
		"model":  c.config.Model,
		"length": len(sql),
	})
	metrics.LLMCallsTotal.WithLabelValues("success").Inc()

	return sql, nil
}

func (c *Client) buildSystemPrompt(schemaContext string) string {
	return fmt.Sprintf(`You are an expert SQL query generator. Convert natural language questions to PostgreSQL queries.

Database Schema:
%s

Rules:
1. Only generate SELECT queries (no INSERT, UPDATE, DELETE, DROP)
2. Use proper PostgreSQL syntax
3. Include appropriate JOINs when needed
4. Use meaningful aliases
5. Add ORDER BY clauses when logical
6. Return only the SQL query, no explanation
7. Ensure queries are safe and don't modify data

Examples:
- "Show all sales" → SELECT * FROM sales ORDER BY sale_date DESC
- "Total sales by category" → SELECT category, SUM(price * quantity) as total_sales FROM sales GROUP BY category ORDER BY total_sales DESC
`, schemaContext)
}
