package match

import "sort"

// Flag is a diagnostic tag attached to a match result, explaining why a
// pairing is uncertain or what changed between the two sources.
type Flag string

const (
	// Address-related flags
	FlagAddressMismatch    Flag = "ADDRESS_MISMATCH"
	FlagMultipleProperties Flag = "MULTIPLE_PROPERTIES"
	FlagAddressFormatDiff  Flag = "ADDRESS_FORMAT_DIFF"

	// Name-related flags
	FlagNameMismatch               Flag = "NAME_MISMATCH"
	FlagMultipleResidents          Flag = "MULTIPLE_RESIDENTS"
	FlagNameOrderSwap              Flag = "NAME_ORDER_SWAP"
	FlagCompanyRecord              Flag = "COMPANY_RECORD"
	FlagHouseholdCompositionChange Flag = "HOUSEHOLD_COMPOSITION_CHANGE"
	FlagPartialHouseholdMatch      Flag = "PARTIAL_HOUSEHOLD_MATCH"
	FlagNameCountChange            Flag = "NAME_COUNT_CHANGE"
	FlagCommonMemberPresent        Flag = "COMMON_MEMBER_PRESENT"

	// Email-related flags
	FlagEmailCheckNeeded Flag = "EMAIL_CHECK_NEEDED"
	FlagEmailPreserved   Flag = "EMAIL_PRESERVED"
	FlagMultipleEmails   Flag = "MULTIPLE_EMAILS"
	FlagNoEmails         Flag = "NO_EMAILS"

	// Record existence flags
	FlagNewRecord     Flag = "NEW_RECORD"
	FlagRecordRemoved Flag = "RECORD_REMOVED"

	// Confidence flags
	FlagHighConfidenceMatch   Flag = "HIGH_CONFIDENCE_MATCH"
	FlagMediumConfidenceMatch Flag = "MEDIUM_CONFIDENCE_MATCH"
	FlagLowConfidenceMatch    Flag = "LOW_CONFIDENCE_MATCH"
	FlagPotentialDuplicate    Flag = "POTENTIAL_DUPLICATE"
)

// FlagInfo carries the static description and example shown as review
// tooltips for one flag.
type FlagInfo struct {
	Description string `json:"description"`
	Example     string `json:"example"`
}

// flagInfo is the immutable metadata table for the closed flag set.
// MULTIPLE_RESIDENTS and POTENTIAL_DUPLICATE are reserved: listed here for
// the review UI but never derived by the analyzer or engine.
var flagInfo = map[Flag]FlagInfo{
	FlagAddressMismatch: {
		Description: "The addresses between the two sources differ even after normalization",
		Example:     `Roster: "123 Main St" vs. Site: "123 Main Street"`,
	},
	FlagMultipleProperties: {
		Description: "The record indicates associations with multiple properties",
		Example:     "A contact linked to two different property addresses",
	},
	FlagAddressFormatDiff: {
		Description: "The addresses are essentially the same but formatted differently (e.g., abbreviations)",
		Example:     `"321 Elm Rd" vs. "321 Elm Road"`,
	},
	FlagNameMismatch: {
		Description: "Slight variations exist in the names (e.g., minor spelling differences)",
		Example:     `"Jon Doe" vs. "John Doe"`,
	},
	FlagMultipleResidents: {
		Description: "The site data shows multiple residents at a single address",
		Example:     `"Alice & Bob Smith"`,
	},
	FlagNameOrderSwap: {
		Description: "The order of first and last names might be swapped between sources",
		Example:     `Roster: "Doe, John" vs. Site: "John Doe"`,
	},
	FlagCompanyRecord: {
		Description: "The record appears to represent a company rather than an individual",
		Example:     `"Acme Corp"`,
	},
	FlagHouseholdCompositionChange: {
		Description: "The overall household composition has changed",
		Example:     `Roster: "Rick & Laura Diedrich" vs. Site: "Bob & Laura Diedrich"`,
	},
	FlagPartialHouseholdMatch: {
		Description: "Some household members match while others do not",
		Example:     `Roster: "Rick & Laura Diedrich" vs. Site: "Laura Diedrich"`,
	},
	FlagNameCountChange: {
		Description: "The number of individuals in the household has changed",
		Example:     `Roster: "Laura Diedrich" vs. Site: "Bob & Laura Diedrich"`,
	},
	FlagCommonMemberPresent: {
		Description: "At least one name is common between the two records, indicating partial stability",
		Example:     `Both sources include "Laura Diedrich"`,
	},
	FlagEmailCheckNeeded: {
		Description: "The site holds a different email or a list that does not include the roster email",
		Example:     `Roster: "john@example.com" vs. Site: "[jon@example.com]"`,
	},
	FlagEmailPreserved: {
		Description: "The site has no email while the roster record has one, so the roster email should be retained",
		Example:     `Roster: "mary@example.com", Site: none`,
	},
	FlagMultipleEmails: {
		Description: "The site record contains multiple email addresses, which may require manual review",
		Example:     `Site: "[a@example.com, b@example.com]"`,
	},
	FlagNoEmails: {
		Description: "Neither the site data nor the roster record provides an email address",
		Example:     "Both sources have no email information",
	},
	FlagNewRecord: {
		Description: "The contact is present on the site but missing in the roster",
		Example:     "A new contact found on the site that is not recorded in the roster",
	},
	FlagRecordRemoved: {
		Description: "The contact exists in the roster but is no longer found on the site",
		Example:     "A contact listed in the roster that does not appear on the site",
	},
	FlagHighConfidenceMatch: {
		Description: "Multiple matching criteria (name, email, address) indicate a very likely match",
		Example:     "All key fields align closely between the two sources",
	},
	FlagMediumConfidenceMatch: {
		Description: "Two key criteria match while one is uncertain",
		Example:     "Name and address match, but email is different or missing",
	},
	FlagLowConfidenceMatch: {
		Description: "Only one matching criterion is satisfied or there are conflicting indicators",
		Example:     "Only the name matches, with differences in both email and address",
	},
	FlagPotentialDuplicate: {
		Description: "There are indications of duplicate records requiring manual review",
		Example:     "Two site records closely match a single roster record",
	},
}

// Info returns the static metadata for a flag. Unknown flags return a zero
// FlagInfo.
func (f Flag) Info() FlagInfo {
	return flagInfo[f]
}

// AllFlags returns every flag in the closed set, sorted by name.
func AllFlags() []Flag {
	flags := make([]Flag, 0, len(flagInfo))
	for f := range flagInfo {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}

// FlagSet is an unordered set of diagnostic flags.
type FlagSet map[Flag]bool

// NewFlagSet builds a set from the given flags.
func NewFlagSet(flags ...Flag) FlagSet {
	fs := make(FlagSet, len(flags))
	for _, f := range flags {
		fs[f] = true
	}
	return fs
}

// Add inserts a flag into the set.
func (fs FlagSet) Add(f Flag) { fs[f] = true }

// Has reports whether the set contains the flag.
func (fs FlagSet) Has(f Flag) bool { return fs[f] }

// Merge adds every flag from other into the set.
func (fs FlagSet) Merge(other FlagSet) {
	for f := range other {
		fs[f] = true
	}
}

// Names returns the flag names in sorted order, for stable output.
func (fs FlagSet) Names() []string {
	names := make([]string, 0, len(fs))
	for f := range fs {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
