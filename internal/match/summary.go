package match

import "fmt"

// Summary aggregates result counts by match type.
type Summary struct {
	Total   int `json:"total"`
	Exact   int `json:"exact"`
	Fuzzy   int `json:"fuzzy"`
	NoMatch int `json:"no_match"`
}

// Summarize counts results by match type.
func Summarize(results []Result) Summary {
	summary := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Type {
		case MatchExact:
			summary.Exact++
		case MatchFuzzy:
			summary.Fuzzy++
		default:
			summary.NoMatch++
		}
	}
	return summary
}

// Percent returns n as a percentage of the total. Zero totals yield 0
// rather than a division failure.
func (s Summary) Percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}

// String renders the summary as review-friendly text. An empty result set is
// a defined outcome, not an error.
func (s Summary) String() string {
	if s.Total == 0 {
		return "No records to analyze."
	}

	return fmt.Sprintf(`Matching Analysis:
Total Records: %d
Exact Matches: %d (%.1f%%)
Fuzzy Matches: %d (%.1f%%)
No Matches: %d (%.1f%%)`,
		s.Total,
		s.Exact, s.Percent(s.Exact),
		s.Fuzzy, s.Percent(s.Fuzzy),
		s.NoMatch, s.Percent(s.NoMatch))
}
