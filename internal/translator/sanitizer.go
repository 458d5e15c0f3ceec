// internal/translator/sanitizer.go
package translator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnsafeQuery is returned by Sanitize when a mutating keyword appears in
// text that does not begin with SELECT.
var ErrUnsafeQuery = errors.New("UNSAFE_QUERY")

var (
	fenceOpenRe  = regexp.MustCompile("```sql\n?")
	fenceCloseRe = regexp.MustCompile("```\n?")
)

// Mutating keywords rejected by the sanitizer. Checked as plain substrings,
// not tokens, so a read query mentioning one of these words in a literal or
// identifier is rejected too. Known limitation, kept deliberately.
var dangerousKeywords = []string{
	"DROP", "DELETE", "INSERT", "UPDATE", "ALTER", "CREATE", "TRUNCATE",
}

// Sanitize strips Markdown code fences, collapses whitespace, and rejects
// statements that contain a mutating keyword without beginning with SELECT.
// It is the hard gate: nothing reaches the database without passing here.
// Idempotent on already-clean input.
func Sanitize(raw string) (string, error) {
	cleaned := fenceOpenRe.ReplaceAllString(raw, "")
	cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	upper := strings.ToUpper(cleaned)
	if !strings.HasPrefix(upper, "SELECT") {
		for _, keyword := range dangerousKeywords {
			if strings.Contains(upper, keyword) {
				return "", fmt.Errorf("%w: potentially dangerous SQL operation detected: %s", ErrUnsafeQuery, keyword)
			}
		}
	}

	return strings.TrimSpace(cleaned), nil
}

// Validate is the soft advisory check: the statement must begin with SELECT
// (case-insensitive) and have balanced parentheses. Never errors.
func Validate(sql string) bool {
	cleaned, err := Sanitize(sql)
	if err != nil {
		return false
	}

	if !strings.HasPrefix(strings.ToUpper(cleaned), "SELECT") {
		return false
	}

	return strings.Count(cleaned, "(") == strings.Count(cleaned, ")")
}
