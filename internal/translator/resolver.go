// internal/translator/resolver.go
package translator

import (
	"context"
	"strings"

	"sql-dashboard/internal/common/logger"
	"sql-dashboard/internal/models"
)

// SQLGenerator is the remote tier-3 collaborator. Implementations must
// bound the call with their own timeout and return a plain SQL string.
type SQLGenerator interface {
	GenerateSQL(ctx context.Context, question, schemaContext string) (string, error)
}

// Outcome tags which resolution path produced the SQL.
type Outcome int

const (
	OutcomeMatched        Outcome = iota // tier-1 pattern hit
	OutcomeRuleMatched                   // tier-2 rule hit
	OutcomeRemoteResolved                // tier-3 remote call succeeded
	OutcomeFallback                      // deterministic default
	OutcomeFailed                        // internal failure, placeholder query
)

// ErrorPlaceholderSQL is the harmless query returned when resolution fails
// internally. Never executed with meaningful results.
const ErrorPlaceholderSQL = "SELECT 1 as error"

// Resolver maps natural-language questions to SQL through three ordered
// strategies: anchored pattern table, unanchored rule table, remote model
// call. Rule tables are fixed at construction.
type Resolver struct {
	patterns   []Rule
	rules      []Rule
	remote     SQLGenerator
	defaultSQL string
	logger     logger.Logger
}

// NewResolver builds a resolver over immutable rule tables. remote may be
// nil, in which case tier 3 is skipped entirely.
func NewResolver(patterns, rules []Rule, remote SQLGenerator, log logger.Logger) *Resolver {
	return &Resolver{
		patterns:   patterns,
		rules:      rules,
		remote:     remote,
		defaultSQL: DefaultFallbackSQL,
		logger:     log.With(map[string]interface{}{"component": "resolver"}),
	}
}

// NewDefaultResolver builds a resolver over the built-in rule tables.
func NewDefaultResolver(remote SQLGenerator, log logger.Logger) *Resolver {
	return NewResolver(DefaultPatternRules(), DefaultRuleBasedRules(), remote, log)
}

// Resolve converts a question into a ResolvedQuery. It never returns an
// error: any internal failure degrades to a placeholder query with method
// "error". Blank questions must be rejected by the caller before this.
func (r *Resolver) Resolve(ctx context.Context, question string, schema models.SchemaDescriptor) (result models.ResolvedQuery) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("resolution panicked", map[string]interface{}{
				"question": question,
				"panic":    rec,
			})
			result = models.ResolvedQuery{SQL: ErrorPlaceholderSQL, Method: OutcomeFailed.method()}
		}
	}()

	sql, outcome := r.resolve(ctx, question, schema)

	return models.ResolvedQuery{SQL: sql, Method: outcome.method()}
}

func (r *Resolver) resolve(ctx context.Context, question string, schema models.SchemaDescriptor) (string, Outcome) {
	// Tier 1: anchored pattern table, zero cost.
	for _, rule := range r.patterns {
		if rule.Pattern.MatchString(question) {
			return rule.SQL, OutcomeMatched
		}
	}

	// Tier 2: unanchored rule table.
	for _, rule := range r.rules {
		if rule.Pattern.MatchString(question) {
			return rule.SQL, OutcomeRuleMatched
		}
	}

	// Tier 3: remote call, only when a generator is configured. Any failure
	// is a local miss, never surfaced to the caller.
	if r.remote != nil {
		if sql, ok := r.resolveRemote(ctx, question, schema); ok {
			return sql, OutcomeRemoteResolved
		}
	}

	return r.defaultSQL, OutcomeFallback
}

func (r *Resolver) resolveRemote(ctx context.Context, question string, schema models.SchemaDescriptor) (string, bool) {
	raw, err := r.remote.GenerateSQL(ctx, question, DescribeSchema(schema))
	if err != nil {
		r.logger.Warn("remote resolution failed, falling back", map[string]interface{}{
			"question": question,
			"error":    err.Error(),
		})
		return "", false
	}

	cleaned, err := Sanitize(raw)
	if err != nil {
		r.logger.Warn("remote resolution returned unsafe SQL, falling back", map[string]interface{}{
			"question": question,
			"error":    err.Error(),
		})
		return "", false
	}

	if strings.TrimSpace(cleaned) == "" || !Validate(cleaned) {
		r.logger.Warn("remote resolution returned invalid SQL, falling back", map[string]interface{}{
			"question": question,
			"sql":      cleaned,
		})
		return "", false
	}

	return cleaned, true
}

func (o Outcome) method() models.ResolveMethod {
	switch o {
	case OutcomeMatched:
		return models.MethodPattern
	case OutcomeRuleMatched, OutcomeFallback:
		return models.MethodRuleBased
	case OutcomeRemoteResolved:
		return models.MethodLLM
	default:
		return models.MethodError
	}
}
