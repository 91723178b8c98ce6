package normalize

import (
	"math"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// addressReplacements maps long-form address words to their abbreviations.
// Order matters: rules are applied sequentially, so "northeast" is reduced
// by the "north" rule and then the "east" rule ("northeast" -> "neast" ->
// "ne") before its own entry is ever reached. Replacement is plain substring
// substitution, not word-boundary aware, to stay score-compatible with the
// historical matcher output.
var addressReplacements = []struct {
	full   string
	abbrev string
}{
	{"street", "st"},
	{"avenue", "ave"},
	{"boulevard", "blvd"},
	{"drive", "dr"},
	{"road", "rd"},
	{"lane", "ln"},
	{"court", "ct"},
	{"circle", "cir"},
	{"place", "pl"},
	{"north", "n"},
	{"south", "s"},
	{"east", "e"},
	{"west", "w"},
	{"northeast", "ne"},
	{"northwest", "nw"},
	{"southeast", "se"},
	{"southwest", "sw"},
}

// companyIndicators are substrings that mark a contact name as a business
// rather than a person.
var companyIndicators = []string{
	"llc", "inc", "corp", "ltd", "trust", "properties",
	"association", "management", "company", "partners",
}

// SanitizeString lowercases, trims, and collapses internal whitespace to
// single spaces. Used to build grouping keys, so two strings that differ
// only in case or spacing sanitize to the same value.
func SanitizeString(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeAddress canonicalizes an address for comparison: lowercase,
// abbreviate common street words and directions, strip everything that is
// not alphanumeric or whitespace, collapse whitespace.
func NormalizeAddress(addr string) string {
	addr = strings.ToLower(addr)

	for _, r := range addressReplacements {
		addr = strings.ReplaceAll(addr, r.full, r.abbrev)
	}

	var b strings.Builder
	b.Grow(len(addr))
	for _, c := range addr {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// FuzzyRatio returns a Levenshtein-based similarity score in [0, 100].
// Symmetric; identical strings score 100, and an empty string scores 0
// against anything non-empty.
func FuzzyRatio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}

	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// IsLikelyCompany reports whether a contact name looks like a business name
// (LLC, trust, management company, etc.) rather than a person.
func IsLikelyCompany(name string) bool {
	lower := strings.ToLower(name)
	for _, indicator := range companyIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
