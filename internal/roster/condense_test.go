package roster

import (
	"testing"
)

func TestCondenseMergesHousehold(t *testing.T) {
	contacts := []RawContact{
		{
			FirstName:           "Rick",
			LastName:            "Diedrich",
			Email:               "rick@example.com",
			FullPropertyAddress: "12 Harbor Way\nSeabrook, SC 29940",
		},
		{
			FirstName:           "Laura",
			LastName:            "Diedrich",
			Email:               "laura@example.com",
			FullPropertyAddress: "12 Harbor Way\nSeabrook, SC 29940",
		},
		{
			// Duplicate contact row: same name and email as the first.
			FirstName:           "Rick",
			LastName:            "Diedrich",
			Email:               "rick@example.com",
			FullPropertyAddress: "12 Harbor Way\nSeabrook, SC 29940",
		},
	}

	households, stats := Condense(contacts)

	if len(households) != 1 {
		t.Fatalf("Condense() produced %d households, want 1", len(households))
	}
	if stats.Contacts != 3 || stats.Households != 1 {
		t.Errorf("stats = %+v, want 3 contacts and 1 household", stats)
	}

	h := households[0]
	if h.FirstName != "Rick & Laura" {
		t.Errorf("FirstName = %q, want %q", h.FirstName, "Rick & Laura")
	}
	if h.OccupantCount != 2 {
		t.Errorf("OccupantCount = %d, want 2", h.OccupantCount)
	}
	if len(h.Emails) != 2 || h.EmailCount != 2 {
		t.Errorf("Emails = %v (count %d), want 2 distinct emails", h.Emails, h.EmailCount)
	}
	if h.Emails[0] != "rick@example.com" || h.Emails[1] != "laura@example.com" {
		t.Errorf("Emails = %v, want first-seen order", h.Emails)
	}
}

func TestCondenseGroupingIsCaseInsensitive(t *testing.T) {
	contacts := []RawContact{
		{FirstName: "Ann", LastName: "Smith", FullPropertyAddress: "5 Oak Ln"},
		{FirstName: "Bob", LastName: "SMITH", FullPropertyAddress: "5  Oak  Ln "},
	}

	households, _ := Condense(contacts)
	if len(households) != 1 {
		t.Fatalf("Condense() produced %d households, want 1 (grouping should sanitize case and spacing)", len(households))
	}
	if households[0].FirstName != "Ann & Bob" {
		t.Errorf("FirstName = %q, want %q", households[0].FirstName, "Ann & Bob")
	}
}

func TestCondenseSingleContact(t *testing.T) {
	tests := []struct {
		name       string
		contact    RawContact
		wantEmails int
	}{
		{
			name:       "with email",
			contact:    RawContact{FirstName: "Mary", LastName: "Jones", Email: "mary@example.com", FullPropertyAddress: "1 Elm St"},
			wantEmails: 1,
		},
		{
			name:       "without email",
			contact:    RawContact{FirstName: "Mary", LastName: "Jones", FullPropertyAddress: "1 Elm St"},
			wantEmails: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			households, _ := Condense([]RawContact{tt.contact})
			if len(households) != 1 {
				t.Fatalf("Condense() produced %d households, want 1", len(households))
			}

			h := households[0]
			if h.OccupantCount != 1 {
				t.Errorf("OccupantCount = %d, want 1", h.OccupantCount)
			}
			if len(h.Emails) != tt.wantEmails || h.EmailCount != tt.wantEmails {
				t.Errorf("Emails = %v (count %d), want %d", h.Emails, h.EmailCount, tt.wantEmails)
			}
		})
	}
}

func TestCondenseMissingPropertyAddress(t *testing.T) {
	contacts := []RawContact{
		{FirstName: "Ann", LastName: "Smith", FullPropertyAddress: ""},
		{FirstName: "Bob", LastName: "Smith", FullPropertyAddress: ""},
		{FirstName: "Cara", LastName: "Lee", FullPropertyAddress: "9 Pine Ct"},
	}

	households, stats := Condense(contacts)

	if stats.MissingPropertyAddress != 2 {
		t.Errorf("MissingPropertyAddress = %d, want 2", stats.MissingPropertyAddress)
	}

	// Contacts without an address still condense under the empty key
	// component rather than being dropped.
	if len(households) != 2 {
		t.Fatalf("Condense() produced %d households, want 2", len(households))
	}

	total := 0
	for _, h := range households {
		total += h.OccupantCount
	}
	if total != 3 {
		t.Errorf("total occupants = %d, want 3 (every contact maps to exactly one household)", total)
	}
}

func TestCondenseTakesAddressFromFirstContact(t *testing.T) {
	contacts := []RawContact{
		{
			FirstName:           "Ann",
			LastName:            "Smith",
			PropertyStreet:      "5 Oak Ln",
			MailingStreet:       "PO Box 12",
			FullPropertyAddress: "5 Oak Ln\nSeabrook, SC 29940",
			FullMailingAddress:  "PO Box 12\nSeabrook, SC 29940",
		},
		{
			FirstName:           "Bob",
			LastName:            "Smith",
			PropertyStreet:      "5 Oak Ln",
			MailingStreet:       "5 Oak Ln",
			FullPropertyAddress: "5 Oak Ln\nSeabrook, SC 29940",
			FullMailingAddress:  "5 Oak Ln\nSeabrook, SC 29940",
		},
	}

	households, _ := Condense(contacts)
	if len(households) != 1 {
		t.Fatalf("Condense() produced %d households, want 1", len(households))
	}
	if households[0].MailingStreet != "PO Box 12" {
		t.Errorf("MailingStreet = %q, want the first contact's %q", households[0].MailingStreet, "PO Box 12")
	}
}

func TestOwnerFullAddress(t *testing.T) {
	owner := OwnerRecord{Street: "123 Main St", City: "Springfield", StateZip: "IL 62704"}
	want := "123 Main St\nSpringfield, IL 62704"
	if got := owner.FullAddress(); got != want {
		t.Errorf("FullAddress() = %q, want %q", got, want)
	}
}
