package match

import (
	"strings"

	"github.com/hoa-reconcile/internal/normalize"
	"github.com/hoa-reconcile/internal/roster"
)

// Analyzer derives diagnostic flags for one owner/household pair.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer creates an analyzer with the default thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{thresholds: DefaultThresholds()}
}

// Analyze derives the full flag set for a scored pair: email, name, and
// address flags from the records themselves, plus a confidence flag from the
// score. Existence flags (NEW_RECORD, RECORD_REMOVED) are assigned by the
// engine for rows with no counterpart, never here.
func (a *Analyzer) Analyze(owner roster.OwnerRecord, household roster.HouseholdRecord, score int) FlagSet {
	flags := NewFlagSet()
	flags.Merge(a.EmailFlags(owner.Email, household.Emails))
	flags.Merge(a.NameFlags(owner, household))
	flags.Merge(a.AddressFlags(owner, household))

	switch {
	case score >= 95:
		flags.Add(FlagHighConfidenceMatch)
	case score >= 70:
		flags.Add(FlagMediumConfidenceMatch)
	case score > 50:
		flags.Add(FlagLowConfidenceMatch)
	}

	return flags
}

// EmailFlags evaluates email-related flags for an owner email against the
// household's email set.
func (a *Analyzer) EmailFlags(ownerEmail string, householdEmails []string) FlagSet {
	flags := NewFlagSet()

	if ownerEmail == "" && len(householdEmails) == 0 {
		flags.Add(FlagNoEmails)
		return flags
	}

	if ownerEmail != "" && len(householdEmails) == 0 {
		flags.Add(FlagEmailPreserved)
		return flags
	}

	if len(householdEmails) > 1 {
		flags.Add(FlagMultipleEmails)
	}

	if ownerEmail != "" {
		found := false
		for _, email := range householdEmails {
			if email != "" && strings.EqualFold(ownerEmail, email) {
				found = true
				break
			}
		}
		if !found {
			flags.Add(FlagEmailCheckNeeded)
		}
	}

	return flags
}

// NameFlags evaluates name-related flags. Company records short-circuit:
// person-name comparisons are meaningless against a business name.
func (a *Analyzer) NameFlags(owner roster.OwnerRecord, household roster.HouseholdRecord) FlagSet {
	flags := NewFlagSet()

	if household.IsCompany {
		flags.Add(FlagCompanyRecord)
		return flags
	}

	ownerFull := strings.TrimSpace(owner.FirstName + " " + owner.LastName)
	householdFull := strings.TrimSpace(household.FirstName + " " + household.LastName)

	// Multi-member households are compared member-by-member.
	if strings.Contains(ownerFull, "&") || strings.Contains(householdFull, "&") {
		common, ownerOnly, householdOnly := compareMembers(ownerFull, householdFull)

		if len(common) > 0 {
			flags.Add(FlagCommonMemberPresent)
		}
		if len(ownerOnly) > 0 || len(householdOnly) > 0 {
			flags.Add(FlagPartialHouseholdMatch)
		}
		if len(strings.Split(ownerFull, "&")) != len(strings.Split(householdFull, "&")) {
			flags.Add(FlagNameCountChange)
		}
		if len(common) > 0 && (len(ownerOnly) > 0 || len(householdOnly) > 0) {
			flags.Add(FlagHouseholdCompositionChange)
		}
	}

	// Swapped or misspelled last names, only meaningful when each side
	// carries a single surname token.
	if singleToken(owner.LastName) && singleToken(household.LastName) {
		ratio := normalize.FuzzyRatio(strings.ToLower(owner.LastName), strings.ToLower(household.LastName))
		if ratio < a.thresholds.NameMatch {
			swap := normalize.FuzzyRatio(strings.ToLower(owner.LastName), strings.ToLower(household.FirstName))
			if swap >= a.thresholds.NameMatch {
				flags.Add(FlagNameOrderSwap)
			} else {
				flags.Add(FlagNameMismatch)
			}
		}
	}

	return flags
}

// AddressFlags evaluates address-related flags. Blank addresses produce no
// flags; a household whose property and mailing streets differ is flagged
// as owning multiple properties.
func (a *Analyzer) AddressFlags(owner roster.OwnerRecord, household roster.HouseholdRecord) FlagSet {
	flags := NewFlagSet()

	ownerAddr := owner.FullAddress()
	householdAddr := household.FullMailingAddress

	if strings.TrimSpace(ownerAddr) != "" && strings.TrimSpace(householdAddr) != "" {
		ownerNorm := normalize.NormalizeAddress(ownerAddr)
		householdNorm := normalize.NormalizeAddress(householdAddr)

		if ownerNorm != householdNorm {
			if normalize.FuzzyRatio(ownerNorm, householdNorm) >= a.thresholds.AddressMatch {
				flags.Add(FlagAddressFormatDiff)
			} else {
				flags.Add(FlagAddressMismatch)
			}
		}
	}

	if household.PropertyStreet != household.MailingStreet {
		flags.Add(FlagMultipleProperties)
	}

	return flags
}

// compareMembers splits both full names on "&" and returns the members
// common to both sides and those unique to each.
func compareMembers(ownerNames, householdNames string) (common, ownerOnly, householdOnly []string) {
	ownerSet := memberSet(ownerNames)
	householdSet := memberSet(householdNames)

	for name := range ownerSet {
		if householdSet[name] {
			common = append(common, name)
		} else {
			ownerOnly = append(ownerOnly, name)
		}
	}
	for name := range householdSet {
		if !ownerSet[name] {
			householdOnly = append(householdOnly, name)
		}
	}
	return common, ownerOnly, householdOnly
}

func memberSet(names string) map[string]bool {
	set := make(map[string]bool)
	for _, name := range strings.Split(names, "&") {
		set[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return set
}

func singleToken(s string) bool {
	return len(strings.Fields(s)) == 1
}
