package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hoa-reconcile/internal/match"
	"github.com/hoa-reconcile/internal/roster"
)

// resultColumns is the header of the exported reconciliation CSV.
var resultColumns = []string{
	"Owner_First_Name", "Owner_Last_Name", "Owner_Email",
	"Owner_Street", "Owner_City", "Owner_StateZip",
	"Household_First_Name", "Household_Last_Name", "Household_Email",
	"Household_Street", "Household_City", "Household_StateZip",
	"Match_Score", "Email_Match", "Last_Name_Match", "Address_Match",
	"Match_Type", "Match_Flags",
}

// WriteResults writes the reconciled result rows to a CSV file.
func WriteResults(filename string, results []match.Result) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	return WriteResultsTo(file, results)
}

// WriteResultsTo streams the reconciled result rows as CSV. The household
// side carries the mailing address, matching what a reviewer would update
// in the roster. Flags are sorted and pipe-joined.
func WriteResultsTo(w io.Writer, results []match.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(resultColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		row := make([]string, 0, len(resultColumns))

		if r.Owner != nil {
			row = append(row, r.Owner.FirstName, r.Owner.LastName, r.Owner.Email,
				r.Owner.Street, r.Owner.City, r.Owner.StateZip)
		} else {
			row = append(row, "", "", "", "", "", "")
		}

		if r.Household != nil {
			row = append(row, r.Household.FirstName, r.Household.LastName, strings.Join(r.Household.Emails, "|"),
				r.Household.MailingStreet, r.Household.MailingCity, r.Household.MailingStateZip)
		} else {
			row = append(row, "", "", "", "", "", "")
		}

		row = append(row,
			strconv.Itoa(r.Score),
			strconv.FormatBool(r.Details.EmailMatch),
			strconv.FormatBool(r.Details.LastNameMatch),
			strconv.FormatBool(r.Details.AddressMatch),
			string(r.Type),
			strings.Join(r.Flags.Names(), "|"),
		)

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteContacts writes scraped per-contact rows to a CSV file, in the shape
// LoadContacts reads them back.
func WriteContacts(filename string, contacts []roster.RawContact) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(contactColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, c := range contacts {
		row := []string{
			c.FirstName, c.LastName, c.Email,
			c.PropertyStreet, c.PropertyCity, c.PropertyStateZip, c.FullPropertyAddress,
			c.MailingStreet, c.MailingCity, c.MailingStateZip, c.FullMailingAddress,
			strconv.FormatBool(c.IsCompany),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
