package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hoa-reconcile/internal/roster"
)

// Owner roster CSV columns.
var ownerColumns = []string{"First Name", "Last Name", "Email", "Street", "City", "StateZip"}

// Scraped contact CSV columns.
var contactColumns = []string{
	"First Name", "Last Name", "Email",
	"Property Street", "Property City", "Property StateZip", "Full Property Address",
	"Mailing Street", "Mailing City", "Mailing StateZip", "Full Mailing Address",
	"Is Company",
}

// LoadOwners reads the spreadsheet-derived owner roster from a CSV file.
// Rows without a last name are dropped; all fields are trimmed. A missing
// required column fails the whole load.
func LoadOwners(filename string) ([]roster.OwnerRecord, error) {
	var owners []roster.OwnerRecord

	err := readCSV(filename, ownerColumns, func(field func(string) string) error {
		if field("Last Name") == "" {
			return nil
		}
		owners = append(owners, roster.OwnerRecord{
			FirstName: field("First Name"),
			LastName:  field("Last Name"),
			Email:     field("Email"),
			Street:    field("Street"),
			City:      field("City"),
			StateZip:  field("StateZip"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return owners, nil
}

// LoadContacts reads scraped per-contact rows from a CSV file, in the shape
// the directory scraper writes them.
func LoadContacts(filename string) ([]roster.RawContact, error) {
	var contacts []roster.RawContact

	err := readCSV(filename, contactColumns, func(field func(string) string) error {
		contacts = append(contacts, roster.RawContact{
			FirstName:           field("First Name"),
			LastName:            field("Last Name"),
			Email:               field("Email"),
			PropertyStreet:      field("Property Street"),
			PropertyCity:        field("Property City"),
			PropertyStateZip:    field("Property StateZip"),
			FullPropertyAddress: field("Full Property Address"),
			MailingStreet:       field("Mailing Street"),
			MailingCity:         field("Mailing City"),
			MailingStateZip:     field("Mailing StateZip"),
			FullMailingAddress:  field("Full Mailing Address"),
			IsCompany:           parseBool(field("Is Company")),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

// readCSV opens a CSV file, validates that every required column is present
// in the header, and calls rowFunc once per data row with a field accessor
// that trims whitespace.
func readCSV(filename string, required []string, rowFunc func(field func(string) string) error) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("%s: missing required column %q", filename, name)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s line %d: %w", filename, line+1, err)
		}
		line++

		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if err := rowFunc(field); err != nil {
			return fmt.Errorf("%s line %d: %w", filename, line, err)
		}
	}

	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
