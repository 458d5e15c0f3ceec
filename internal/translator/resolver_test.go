// internal/translator/resolver_test.go
package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"sql-dashboard/internal/common/logger"
	"sql-dashboard/internal/models"
)

// ==========================
// Test Helpers
// ==========================

// fakeGenerator implements SQLGenerator with a canned response.
type fakeGenerator struct {
	sql   string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateSQL(ctx context.Context, question, schemaContext string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.sql, nil
}

func testSchema() models.SchemaDescriptor {
	return models.SchemaDescriptor{
		{
			Name: "sales",
			Columns: []models.ColumnDescriptor{
				{Name: "id", DataType: "integer", Nullable: false},
				{Name: "product_name", DataType: "character varying"},
				{Name: "price", DataType: "numeric"},
			},
		},
	}
}

// ==========================
// Tier 1 / Tier 2 Tests
// ==========================

func TestResolver_PatternTier(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantSQL  string
	}{
		{
			name:     "all sales data",
			question: "Show me all sales data",
			wantSQL:  "SELECT * FROM sales ORDER BY sale_date DESC",
		},
		{
			name:     "sales by category",
			question: "What are the total sales by category?",
			wantSQL:  "SELECT category, SUM(price * quantity) as total_sales FROM sales GROUP BY category ORDER BY total_sales DESC",
		},
		{
			name:     "revenue",
			question: "What's the total revenue?",
			wantSQL:  "SELECT SUM(price * quantity) as total_revenue FROM sales",
		},
		{
			name:     "customer demographics",
			question: "Show me customers from last month",
			wantSQL:  "SELECT * FROM customers ORDER BY registration_date DESC",
		},
	}

	// A remote generator is wired in but must never be consulted for
	// pattern-tier questions.
	remote := &fakeGenerator{sql: "SELECT 42"}
	r := NewDefaultResolver(remote, logger.NewNoOpLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(context.Background(), tt.question, testSchema())
			assert.Equal(t, tt.wantSQL, got.SQL)
			assert.Equal(t, models.MethodPattern, got.Method)
		})
	}
	assert.Equal(t, 0, remote.calls)
}

func TestResolver_RuleTier(t *testing.T) {
	r := NewDefaultResolver(nil, logger.NewNoOpLogger())

	got := r.Resolve(context.Background(), "Display the sales figures", testSchema())
	assert.Equal(t, "SELECT * FROM sales ORDER BY sale_date DESC", got.SQL)
	assert.Equal(t, models.MethodRuleBased, got.Method)
}

func TestResolver_FirstMatchWins(t *testing.T) {
	// Matches both the show/display rule and the count rule; declaration
	// order decides.
	r := NewDefaultResolver(nil, logger.NewNoOpLogger())

	got := r.Resolve(context.Background(), "count of display sales", testSchema())
	assert.Equal(t, "SELECT * FROM sales ORDER BY sale_date DESC", got.SQL)
	assert.Equal(t, models.MethodRuleBased, got.Method)
}

func TestResolver_DefaultFallbackWithoutRemote(t *testing.T) {
	r := NewDefaultResolver(nil, logger.NewNoOpLogger())

	got := r.Resolve(context.Background(), "tell me something interesting", testSchema())
	assert.Equal(t, DefaultFallbackSQL, got.SQL)
	assert.Equal(t, models.MethodRuleBased, got.Method)
}

// ==========================
// Tier 3 Tests
// ==========================

func TestResolver_RemoteTier(t *testing.T) {
	tests := []struct {
		name       string
		remote     *fakeGenerator
		wantSQL    string
		wantMethod models.ResolveMethod
	}{
		{
			name:       "remote success",
			remote:     &fakeGenerator{sql: "SELECT region, COUNT(*) FROM sales GROUP BY region"},
			wantSQL:    "SELECT region, COUNT(*) FROM sales GROUP BY region",
			wantMethod: models.MethodLLM,
		},
		{
			name:       "remote response fenced",
			remote:     &fakeGenerator{sql: "```sql\nSELECT region FROM sales\n```"},
			wantSQL:    "SELECT region FROM sales",
			wantMethod: models.MethodLLM,
		},
		{
			name:       "remote call fails",
			remote:     &fakeGenerator{err: errors.New("REMOTE_CALL_FAILED: status 500")},
			wantSQL:    DefaultFallbackSQL,
			wantMethod: models.MethodRuleBased,
		},
		{
			name:       "remote returns unsafe sql",
			remote:     &fakeGenerator{sql: "DROP TABLE sales"},
			wantSQL:    DefaultFallbackSQL,
			wantMethod: models.MethodRuleBased,
		},
		{
			name:       "remote returns non-select",
			remote:     &fakeGenerator{sql: "EXPLAIN ANALYZE SELECT 1"},
			wantSQL:    DefaultFallbackSQL,
			wantMethod: models.MethodRuleBased,
		},
		{
			name:       "remote returns empty",
			remote:     &fakeGenerator{sql: "   "},
			wantSQL:    DefaultFallbackSQL,
			wantMethod: models.MethodRuleBased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDefaultResolver(tt.remote, logger.NewTestLogger(t))
			got := r.Resolve(context.Background(), "correlate discounts against churn", testSchema())
			assert.Equal(t, tt.wantSQL, got.SQL)
			assert.Equal(t, tt.wantMethod, got.Method)
			assert.Equal(t, 1, tt.remote.calls)
		})
	}
}

// panickingGenerator simulates an internal failure inside the remote tier.
type panickingGenerator struct{}

func (panickingGenerator) GenerateSQL(ctx context.Context, question, schemaContext string) (string, error) {
	panic("generator state corrupted")
}

func TestResolver_InternalPanicDegradesToErrorQuery(t *testing.T) {
	r := NewDefaultResolver(panickingGenerator{}, logger.NewNoOpLogger())

	got := r.Resolve(context.Background(), "correlate discounts against churn", testSchema())

	assert.Equal(t, ErrorPlaceholderSQL, got.SQL)
	assert.Equal(t, models.MethodError, got.Method)
}

func TestResolver_PanicInRuleTableDegradesToErrorQuery(t *testing.T) {
	// A nil pattern makes the tier-1 scan itself blow up, not just the
	// remote collaborator.
	r := NewResolver([]Rule{{Pattern: nil, SQL: "SELECT 1"}}, nil, nil, logger.NewNoOpLogger())

	got := r.Resolve(context.Background(), "anything", nil)

	assert.Equal(t, ErrorPlaceholderSQL, got.SQL)
	assert.Equal(t, models.MethodError, got.Method)
}

func TestResolver_PatternsDeterministicRegardlessOfRemote(t *testing.T) {
	// Same question, remote configured vs not: tier-1 answer must not change.
	question := "Show me all sales data"

	withRemote := NewDefaultResolver(&fakeGenerator{sql: "SELECT 1"}, logger.NewNoOpLogger())
	withoutRemote := NewDefaultResolver(nil, logger.NewNoOpLogger())

	a := withRemote.Resolve(context.Background(), question, testSchema())
	b := withoutRemote.Resolve(context.Background(), question, testSchema())
	assert.Equal(t, a, b)
}

func TestResolver_SanitizesEveryNonErrorResult(t *testing.T) {
	r := NewDefaultResolver(&fakeGenerator{sql: "SELECT * FROM sales WHERE region = 'North'"}, logger.NewNoOpLogger())

	questions := []string{
		"Show me all sales data",
		"Display the sales figures",
		"correlate discounts against churn",
		"tell me something interesting",
	}

	for _, q := range questions {
		got := r.Resolve(context.Background(), q, testSchema())
		if got.Method == models.MethodError {
			continue
		}
		_, err := Sanitize(got.SQL)
		assert.NoError(t, err, "question %q produced unsanitary SQL", q)
	}
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkResolver_PatternTier(b *testing.B) {
	r := NewDefaultResolver(nil, logger.NewNoOpLogger())
	schema := testSchema()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(context.Background(), "Show me all sales data", schema)
	}
}
