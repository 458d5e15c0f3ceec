// internal/translator/rules.go
package translator

import "regexp"

// Rule pairs a compiled matcher with the fixed SQL it resolves to.
// Rules are checked in declaration order; the first match wins.
type Rule struct {
	Pattern *regexp.Regexp
	SQL     string
}

// NewRule compiles a case-insensitive unanchored rule.
func NewRule(expr, sql string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)` + expr), SQL: sql}
}

// NewAnchoredRule compiles a case-insensitive rule matched from the start
// of the question.
func NewAnchoredRule(expr, sql string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)^(?:` + expr + `)`), SQL: sql}
}

// DefaultPatternRules is the tier-1 table: instant responses to known
// phrasings, checked before anything else.
func DefaultPatternRules() []Rule {
	return []Rule{
		NewAnchoredRule(`.*all sales.*`, "SELECT * FROM sales ORDER BY sale_date DESC"),
		NewAnchoredRule(`.*sales by category.*`, "SELECT category, SUM(price * quantity) as total_sales FROM sales GROUP BY category ORDER BY total_sales DESC"),
		NewAnchoredRule(`.*total sales.*`, "SELECT SUM(price * quantity) as total_sales FROM sales"),
		NewAnchoredRule(`.*customers.*`, "SELECT * FROM customers ORDER BY registration_date DESC"),
		NewAnchoredRule(`.*average age.*`, "SELECT AVG(age) as average_age FROM customers"),
		NewAnchoredRule(`.*sales by region.*`, "SELECT region, SUM(price * quantity) as total_sales FROM sales GROUP BY region ORDER BY total_sales DESC"),
		NewAnchoredRule(`.*top.*products.*`, "SELECT product_name, SUM(quantity) as total_sold FROM sales GROUP BY product_name ORDER BY total_sold DESC LIMIT 10"),
		NewAnchoredRule(`.*recent sales.*`, "SELECT * FROM sales ORDER BY sale_date DESC LIMIT 10"),
		NewAnchoredRule(`.*revenue.*`, "SELECT SUM(price * quantity) as total_revenue FROM sales"),
	}
}

// DefaultRuleBasedRules is the tier-2 table: broader unanchored coverage
// used when no tier-1 pattern fires.
func DefaultRuleBasedRules() []Rule {
	return []Rule{
		// Sales queries
		NewRule(`.*(all|show|display).*sales`, "SELECT * FROM sales ORDER BY sale_date DESC"),
		NewRule(`.*total.*sales.*category`, "SELECT category, SUM(price * quantity) as total_sales FROM sales GROUP BY category ORDER BY total_sales DESC"),
		NewRule(`.*sales.*region`, "SELECT region, SUM(price * quantity) as total_sales FROM sales GROUP BY region ORDER BY total_sales DESC"),
		NewRule(`.*total.*sales`, "SELECT SUM(price * quantity) as total_sales FROM sales"),
		NewRule(`.*revenue`, "SELECT SUM(price * quantity) as total_revenue FROM sales"),
		NewRule(`.*(top|best).*products`, "SELECT product_name, SUM(quantity) as total_sold, SUM(price * quantity) as revenue FROM sales GROUP BY product_name ORDER BY revenue DESC LIMIT 10"),
		NewRule(`.*recent.*sales`, "SELECT * FROM sales ORDER BY sale_date DESC LIMIT 10"),

		// Customer queries
		NewRule(`.*(all|show|display).*customers`, "SELECT * FROM customers ORDER BY registration_date DESC"),
		NewRule(`.*average.*age`, "SELECT AVG(age) as average_age FROM customers"),
		NewRule(`.*customers.*city`, "SELECT city, COUNT(*) as customer_count FROM customers GROUP BY city ORDER BY customer_count DESC"),

		// General queries
		NewRule(`.*count.*sales`, "SELECT COUNT(*) as total_sales_count FROM sales"),
		NewRule(`.*count.*customers`, "SELECT COUNT(*) as total_customers FROM customers"),
	}
}

// DefaultFallbackSQL is returned when no tier produces a query.
const DefaultFallbackSQL = "SELECT * FROM sales LIMIT 10"
