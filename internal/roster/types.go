package roster

// RawContact is one per-person row as produced by the directory scraper,
// before household condensation.
type RawContact struct {
	FirstName           string
	LastName            string
	Email               string
	PropertyStreet      string
	PropertyCity        string
	PropertyStateZip    string
	FullPropertyAddress string
	MailingStreet       string
	MailingCity         string
	MailingStateZip     string
	FullMailingAddress  string
	IsCompany           bool
}

// HouseholdRecord is the condensed form of one or more raw contacts sharing
// a last name and property address. FirstName holds the distinct first names
// joined by " & " in first-seen order.
type HouseholdRecord struct {
	FirstName           string
	LastName            string
	Emails              []string // distinct non-empty, first-seen order
	PropertyStreet      string
	PropertyCity        string
	PropertyStateZip    string
	FullPropertyAddress string
	MailingStreet       string
	MailingCity         string
	MailingStateZip     string
	FullMailingAddress  string
	IsCompany           bool
	OccupantCount       int
	EmailCount          int
}

// OwnerRecord is one spreadsheet-derived owner row. Rows without a last name
// are dropped at load time.
type OwnerRecord struct {
	FirstName string
	LastName  string
	Email     string
	Street    string
	City      string
	StateZip  string
}

// FullAddress assembles the owner's address in the same shape the household
// side carries its full mailing address: street, newline, "city, statezip".
func (o OwnerRecord) FullAddress() string {
	return o.Street + "\n" + o.City + ", " + o.StateZip
}
