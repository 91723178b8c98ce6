package roster

import (
	"log"
	"strings"

	"github.com/hoa-reconcile/internal/normalize"
)

// CondenseStats reports what condensation did with one batch of contacts.
// MissingPropertyAddress counts contacts that arrived without a property
// address; they are still grouped (under an empty key component), not dropped.
type CondenseStats struct {
	Contacts               int
	Households             int
	MissingPropertyAddress int
}

// Condense groups raw contacts into household records. Contacts sharing a
// sanitized last name and property address become one household: first names
// are merged in first-seen order, emails are deduplicated, and the address
// and company fields are taken from the group's first contact. Every contact
// maps to exactly one household.
func Condense(contacts []RawContact) ([]HouseholdRecord, CondenseStats) {
	stats := CondenseStats{Contacts: len(contacts)}

	groupIndex := make(map[string]int)
	var groups [][]RawContact

	for _, c := range contacts {
		if strings.TrimSpace(c.FullPropertyAddress) == "" {
			stats.MissingPropertyAddress++
		}

		key := normalize.SanitizeString(c.LastName) + "|" + normalize.SanitizeString(c.FullPropertyAddress)
		if i, ok := groupIndex[key]; ok {
			groups[i] = append(groups[i], c)
		} else {
			groupIndex[key] = len(groups)
			groups = append(groups, []RawContact{c})
		}
	}

	if stats.MissingPropertyAddress > 0 {
		log.Printf("Warning: found %d contacts with missing property addresses", stats.MissingPropertyAddress)
	}

	households := make([]HouseholdRecord, 0, len(groups))
	for _, group := range groups {
		households = append(households, condenseGroup(group))
	}

	stats.Households = len(households)
	return households, stats
}

// condenseGroup merges one group of contacts into a single household record.
func condenseGroup(group []RawContact) HouseholdRecord {
	first := group[0]

	var firstNames []string
	seenNames := make(map[string]bool)
	var emails []string
	seenEmails := make(map[string]bool)

	for _, c := range group {
		if c.FirstName != "" && !seenNames[c.FirstName] {
			seenNames[c.FirstName] = true
			firstNames = append(firstNames, c.FirstName)
		}
		if c.Email != "" && !seenEmails[c.Email] {
			seenEmails[c.Email] = true
			emails = append(emails, c.Email)
		}
	}

	// A household always represents at least one person, even when every
	// contact in the group arrived without a first name.
	occupants := len(firstNames)
	if occupants == 0 {
		occupants = 1
	}

	return HouseholdRecord{
		FirstName:           strings.Join(firstNames, " & "),
		LastName:            first.LastName,
		Emails:              emails,
		PropertyStreet:      first.PropertyStreet,
		PropertyCity:        first.PropertyCity,
		PropertyStateZip:    first.PropertyStateZip,
		FullPropertyAddress: first.FullPropertyAddress,
		MailingStreet:       first.MailingStreet,
		MailingCity:         first.MailingCity,
		MailingStateZip:     first.MailingStateZip,
		FullMailingAddress:  first.FullMailingAddress,
		IsCompany:           first.IsCompany,
		OccupantCount:       occupants,
		EmailCount:          len(emails),
	}
}
