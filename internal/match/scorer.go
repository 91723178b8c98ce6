package match

import (
	"strings"

	"github.com/hoa-reconcile/internal/debug"
	"github.com/hoa-reconcile/internal/normalize"
	"github.com/hoa-reconcile/internal/roster"
)

// Scorer computes the 0-100 similarity score for one owner/household pair.
type Scorer struct {
	weights    Weights
	thresholds Thresholds
}

// NewScorer creates a scorer with the default weights and thresholds.
func NewScorer() *Scorer {
	return &Scorer{
		weights:    DefaultWeights(),
		thresholds: DefaultThresholds(),
	}
}

// NewScorerWithConfig creates a scorer with custom weights and thresholds.
func NewScorerWithConfig(weights Weights, thresholds Thresholds) *Scorer {
	return &Scorer{weights: weights, thresholds: thresholds}
}

// Score computes the pair score as the sum of the triggered field weights
// and reports which fields matched. Email comparison is exact but
// case-insensitive; last name and address use fuzzy ratios against the
// configured thresholds.
func (s *Scorer) Score(localDebug bool, owner roster.OwnerRecord, household roster.HouseholdRecord) (int, Details) {
	score := 0
	var details Details

	// Email: owner email must appear among the household's emails.
	if owner.Email != "" && len(household.Emails) > 0 {
		for _, email := range household.Emails {
			if email != "" && strings.EqualFold(owner.Email, email) {
				score += s.weights.EmailMatch
				details.EmailMatch = true
				break
			}
		}
	}

	// Last name: fuzzy comparison of the lowercased names.
	if owner.LastName != "" && household.LastName != "" {
		ratio := normalize.FuzzyRatio(strings.ToLower(owner.LastName), strings.ToLower(household.LastName))
		debug.Output(localDebug, "last name ratio %q vs %q = %d", owner.LastName, household.LastName, ratio)
		if ratio >= s.thresholds.NameMatch {
			score += s.weights.LastNameMatch
			details.LastNameMatch = true
		}
	}

	// Address: fuzzy comparison of the normalized full addresses.
	ownerAddr := owner.FullAddress()
	householdAddr := household.FullMailingAddress
	if ownerAddr != "" && householdAddr != "" {
		ratio := normalize.FuzzyRatio(normalize.NormalizeAddress(ownerAddr), normalize.NormalizeAddress(householdAddr))
		debug.Output(localDebug, "address ratio %q vs %q = %d", ownerAddr, householdAddr, ratio)
		if ratio >= s.thresholds.AddressMatch {
			score += s.weights.AddressMatch
			details.AddressMatch = true
		}
	}

	return score, details
}
