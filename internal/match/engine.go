package match

import (
	"fmt"
	"log"
	"sort"

	"github.com/hoa-reconcile/internal/debug"
	"github.com/hoa-reconcile/internal/roster"
)

// Engine runs the full reconciliation: it scores every owner against every
// unclaimed household, greedily claims the best candidate per owner, and
// emits one result row per owner and per household.
type Engine struct {
	scorer   *Scorer
	analyzer *Analyzer
}

// EngineConfig holds optional overrides for the matching engine.
type EngineConfig struct {
	Weights    *Weights
	Thresholds *Thresholds
}

// NewEngine creates an engine with default weights and thresholds.
func NewEngine() *Engine {
	return NewEngineWithConfig(EngineConfig{})
}

// NewEngineWithConfig creates an engine, falling back to defaults for any
// config field left nil.
func NewEngineWithConfig(config EngineConfig) *Engine {
	weights := DefaultWeights()
	if config.Weights != nil {
		weights = *config.Weights
	}
	thresholds := DefaultThresholds()
	if config.Thresholds != nil {
		thresholds = *config.Thresholds
	}

	return &Engine{
		scorer:   NewScorerWithConfig(weights, thresholds),
		analyzer: &Analyzer{thresholds: thresholds},
	}
}

// Run reconciles owners against households and returns the complete result
// set: one row per matched pair, one RECORD_REMOVED row per unmatched owner,
// one NEW_RECORD row per unclaimed household. Rows are ordered by score
// descending, then Exact before Fuzzy before No Match.
//
// The assignment is greedy, not maximum-weight: owners are processed in
// input order and each claims its best-scoring unclaimed household, with
// ties broken toward the earliest-scanned candidate (households are scanned
// ascending by occupant count, preferring single-person records). An earlier
// owner can therefore claim a household that would have scored higher
// against a later owner.
func (e *Engine) Run(localDebug bool, owners []roster.OwnerRecord, households []roster.HouseholdRecord) []Result {
	defer debug.Timing(localDebug, "match run")()

	// Stable sort keeps the original order among households with the same
	// occupant count, which the tie-break depends on.
	sorted := make([]roster.HouseholdRecord, len(households))
	copy(sorted, households)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccupantCount < sorted[j].OccupantCount
	})

	claimed := make([]bool, len(sorted))
	results := make([]Result, 0, len(owners)+len(sorted))

	for oi := range owners {
		owner := owners[oi]

		bestIdx := -1
		bestScore := 0
		var bestDetails Details
		var bestFlags FlagSet

		for hi := range sorted {
			if claimed[hi] {
				continue
			}

			score, details, flags, err := e.comparePair(localDebug, owner, sorted[hi])
			if err != nil {
				// One bad pair must not abort the owner's scan; treat it
				// as scoring no improvement.
				log.Printf("comparison failed for owner %q %q vs household %q %q: %v",
					owner.FirstName, owner.LastName, sorted[hi].FirstName, sorted[hi].LastName, err)
				continue
			}

			debug.Output(localDebug, "owner %q %q vs household %q %q scored %d",
				owner.FirstName, owner.LastName, sorted[hi].FirstName, sorted[hi].LastName, score)

			// Strictly greater: the first candidate at a given score wins.
			if score > bestScore {
				bestScore = score
				bestIdx = hi
				bestDetails = details
				bestFlags = flags
			}
		}

		if bestIdx >= 0 && bestScore >= MinMatchScore {
			matchType := MatchFuzzy
			if bestScore >= 100 {
				matchType = MatchExact
			}

			household := sorted[bestIdx]
			results = append(results, Result{
				Owner:     &owners[oi],
				Household: &household,
				Score:     bestScore,
				Details:   bestDetails,
				Type:      matchType,
				Flags:     bestFlags,
			})
			claimed[bestIdx] = true
		} else {
			results = append(results, Result{
				Owner: &owners[oi],
				Type:  MatchNone,
				Flags: NewFlagSet(FlagRecordRemoved),
			})
		}
	}

	for hi := range sorted {
		if claimed[hi] {
			continue
		}
		household := sorted[hi]
		results = append(results, Result{
			Household: &household,
			Type:      MatchNone,
			Flags:     NewFlagSet(FlagNewRecord),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Type.Rank() < results[j].Type.Rank()
	})

	return results
}

// comparePair scores one candidate pair and derives its flags. A panic from
// an unexpected malformed record is converted into an error so the caller
// can skip just that pair.
func (e *Engine) comparePair(localDebug bool, owner roster.OwnerRecord, household roster.HouseholdRecord) (score int, details Details, flags FlagSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pair comparison panicked: %v", r)
		}
	}()

	score, details = e.scorer.Score(localDebug, owner, household)
	flags = e.analyzer.Analyze(owner, household, score)
	return score, details, flags, nil
}
