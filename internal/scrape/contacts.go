package scrape

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/hoa-reconcile/internal/normalize"
	"github.com/hoa-reconcile/internal/roster"
)

// ProcessMembers fetches each member's address page and shapes the
// directory into raw contact rows. A member whose page cannot be fetched
// still produces contact rows, just without addresses.
func (c *Client) ProcessMembers(ctx context.Context, members []Member) ([]roster.RawContact, error) {
	var contacts []roster.RawContact

	for i, m := range members {
		info, err := c.FetchMemberAddresses(ctx, m)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("Skipping addresses for member %s %s: %v", m.AssnID, m.MemberID, err)
			info = &AddressInfo{}
		}

		contacts = append(contacts, MemberContacts(m, info)...)

		if (i+1)%50 == 0 {
			log.Printf("Processed %d/%d members", i+1, len(members))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PolitenessDelay):
		}
	}

	return contacts, nil
}

// MemberContacts converts one directory member into raw contact rows.
// Company-named contacts are skipped; members without any contacts fall
// back to a single row under the member name, flagged as a company when the
// name looks like one.
func MemberContacts(m Member, info *AddressInfo) []roster.RawContact {
	property := splitAddress(info.PropertyAddress)
	mailing := splitAddress(info.MailingAddress)

	if len(m.Contacts) == 0 {
		contact := roster.RawContact{
			FirstName: m.MemberName,
			IsCompany: normalize.IsLikelyCompany(m.MemberName),
		}
		fillAddresses(&contact, property, mailing)
		return []roster.RawContact{contact}
	}

	var contacts []roster.RawContact
	for _, person := range m.Contacts {
		fullName := strings.TrimSpace(person.FirstName + " " + person.LastName)
		if normalize.IsLikelyCompany(fullName) {
			continue
		}

		contact := roster.RawContact{
			FirstName: person.FirstName,
			LastName:  person.LastName,
			Email:     person.Email(),
		}
		fillAddresses(&contact, property, mailing)
		contacts = append(contacts, contact)
	}
	return contacts
}

// addressParts is one address block split into its component fields.
type addressParts struct {
	Street   string
	City     string
	StateZip string
	Full     string
}

// splitAddress breaks the extracted lines into street / city / state+zip.
// The first line is the street; the second is "City, ST 12345".
func splitAddress(lines []string) addressParts {
	var parts addressParts
	if len(lines) == 0 {
		return parts
	}

	parts.Street = lines[0]
	parts.Full = strings.Join(lines, "\n")

	if len(lines) > 1 {
		city, stateZip, found := strings.Cut(lines[1], ",")
		if found {
			parts.City = strings.TrimSpace(city)
			parts.StateZip = strings.Join(strings.Fields(stateZip), " ")
		} else {
			parts.City = strings.TrimSpace(lines[1])
		}
	}

	return parts
}

func fillAddresses(contact *roster.RawContact, property, mailing addressParts) {
	contact.PropertyStreet = property.Street
	contact.PropertyCity = property.City
	contact.PropertyStateZip = property.StateZip
	contact.FullPropertyAddress = property.Full
	contact.MailingStreet = mailing.Street
	contact.MailingCity = mailing.City
	contact.MailingStateZip = mailing.StateZip
	contact.FullMailingAddress = mailing.Full
}
