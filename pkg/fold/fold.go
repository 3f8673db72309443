// Package fold implements case- and accent-insensitive matching for list filters,
// so "jose" finds "José".
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String strips combining marks and lowercases s.
func String(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Matcher holds a folded query. The zero value matches everything.
type Matcher struct {
	q string
}

func NewMatcher(q string) Matcher { return Matcher{q: String(q)} }

func (m Matcher) Empty() bool { return m.q == "" }

// Match reports whether any field contains the query.
func (m Matcher) Match(fields ...string) bool {
	if m.q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(String(f), m.q) {
			return true
		}
	}
	return false
}
