package match

import "github.com/hoa-reconcile/internal/roster"

// MatchType classifies a result row.
type MatchType string

const (
	MatchExact MatchType = "Exact"
	MatchFuzzy MatchType = "Fuzzy"
	MatchNone  MatchType = "No Match"
)

// Rank returns the explicit sort priority for a match type. Results are
// ordered Exact, Fuzzy, No Match; sorting by rank rather than by the type
// text avoids depending on the labels happening to sort alphabetically.
func (t MatchType) Rank() int {
	switch t {
	case MatchExact:
		return 0
	case MatchFuzzy:
		return 1
	default:
		return 2
	}
}

// Details records which individual fields matched for one scored pair.
type Details struct {
	EmailMatch    bool `json:"email_match"`
	LastNameMatch bool `json:"last_name_match"`
	AddressMatch  bool `json:"address_match"`
}

// Result is one row of the reconciled output. Owner is nil for households
// with no roster counterpart (NEW_RECORD); Household is nil for roster
// entries no longer on the site (RECORD_REMOVED).
type Result struct {
	Owner     *roster.OwnerRecord
	Household *roster.HouseholdRecord
	Score     int
	Details   Details
	Type      MatchType
	Flags     FlagSet
}

// Weights are the score contributions of the three field comparisons.
// They sum to 100, so a pair matching on all three fields scores exactly 100.
type Weights struct {
	EmailMatch    int
	LastNameMatch int
	AddressMatch  int
}

// DefaultWeights returns the production scoring weights.
func DefaultWeights() Weights {
	return Weights{
		EmailMatch:    50,
		LastNameMatch: 35,
		AddressMatch:  15,
	}
}

// Thresholds are the minimum fuzzy ratios for a field to count as matched.
type Thresholds struct {
	NameMatch    int
	AddressMatch int
}

// DefaultThresholds returns the production fuzzy-match thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NameMatch:    90,
		AddressMatch: 90,
	}
}

// MinMatchScore is the minimum pair score for an owner and a household to be
// paired at all; below it the owner stays unmatched.
const MinMatchScore = 50
