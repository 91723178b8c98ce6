package scrape

import (
	"strings"
	"testing"
)

const memberPage = `
<html><body><table>
<tr><td class="clsDMHeader">Property Address</td></tr>
<tr><td><div id="address_part">
12 Harbor Way<br/>
Seabrook,  SC  29940
</div></td></tr>
<tr><td class="clsDMHeader">Mailing Address</td></tr>
<tr><td><div id="address_part">
PO Box 55<br/>
Beaufort, SC 29902
</div></td></tr>
</table></body></html>`

const propertyOnlyPage = `
<html><body><table>
<tr><td class="clsDMHeader">Property Address</td></tr>
<tr><td><div id="address_part">
12 Harbor Way<br/>
Seabrook, SC 29940
</div></td></tr>
</table></body></html>`

func TestExtractAddresses(t *testing.T) {
	info, err := ExtractAddresses(strings.NewReader(memberPage))
	if err != nil {
		t.Fatalf("ExtractAddresses() error: %v", err)
	}

	wantProperty := []string{"12 Harbor Way", "Seabrook,  SC  29940"}
	wantMailing := []string{"PO Box 55", "Beaufort, SC 29902"}

	if len(info.PropertyAddress) != 2 || info.PropertyAddress[0] != wantProperty[0] || info.PropertyAddress[1] != wantProperty[1] {
		t.Errorf("PropertyAddress = %v, want %v", info.PropertyAddress, wantProperty)
	}
	if len(info.MailingAddress) != 2 || info.MailingAddress[0] != wantMailing[0] || info.MailingAddress[1] != wantMailing[1] {
		t.Errorf("MailingAddress = %v, want %v", info.MailingAddress, wantMailing)
	}
}

func TestExtractAddressesMailingFallsBackToProperty(t *testing.T) {
	info, err := ExtractAddresses(strings.NewReader(propertyOnlyPage))
	if err != nil {
		t.Fatalf("ExtractAddresses() error: %v", err)
	}

	if len(info.MailingAddress) != 2 || info.MailingAddress[0] != "12 Harbor Way" {
		t.Errorf("MailingAddress = %v, want fallback to property address", info.MailingAddress)
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  addressParts
	}{
		{
			name:  "street city statezip",
			lines: []string{"12 Harbor Way", "Seabrook,  SC  29940"},
			want: addressParts{
				Street:   "12 Harbor Way",
				City:     "Seabrook",
				StateZip: "SC 29940",
				Full:     "12 Harbor Way\nSeabrook,  SC  29940",
			},
		},
		{
			name:  "no lines",
			lines: nil,
			want:  addressParts{},
		},
		{
			name:  "street only",
			lines: []string{"12 Harbor Way"},
			want:  addressParts{Street: "12 Harbor Way", Full: "12 Harbor Way"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitAddress(tt.lines); got != tt.want {
				t.Errorf("splitAddress(%v) = %+v, want %+v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestMemberContacts(t *testing.T) {
	info := &AddressInfo{
		PropertyAddress: []string{"12 Harbor Way", "Seabrook, SC 29940"},
		MailingAddress:  []string{"PO Box 55", "Beaufort, SC 29902"},
	}

	member := Member{
		AssnID:     "41678",
		MemberID:   "9001",
		MemberName: "Diedrich",
		Contacts: []Contact{
			{
				FirstName: "Rick",
				LastName:  "Diedrich",
				Comms: []Comm{
					{TypeID: "2", Number: "555-0100"},
					{TypeID: "1", Number: "rick@example.com"},
				},
			},
			{FirstName: "Coastal Holdings", LastName: "LLC"},
		},
	}

	contacts := MemberContacts(member, info)

	if len(contacts) != 1 {
		t.Fatalf("MemberContacts() = %d rows, want 1 (company contact skipped)", len(contacts))
	}

	c := contacts[0]
	if c.Email != "rick@example.com" {
		t.Errorf("Email = %q, want the comm_type 1 entry", c.Email)
	}
	if c.PropertyStreet != "12 Harbor Way" || c.MailingStreet != "PO Box 55" {
		t.Errorf("addresses not filled: %+v", c)
	}
	if c.FullMailingAddress != "PO Box 55\nBeaufort, SC 29902" {
		t.Errorf("FullMailingAddress = %q", c.FullMailingAddress)
	}
}

func TestMemberContactsFallbackRecord(t *testing.T) {
	member := Member{MemberName: "Oakwood Management"}
	contacts := MemberContacts(member, &AddressInfo{})

	if len(contacts) != 1 {
		t.Fatalf("MemberContacts() = %d rows, want 1 fallback row", len(contacts))
	}
	if !contacts[0].IsCompany {
		t.Error("fallback record for a company name should be flagged as a company")
	}
	if contacts[0].FirstName != "Oakwood Management" || contacts[0].LastName != "" {
		t.Errorf("fallback record = %+v, want member name in FirstName", contacts[0])
	}
}
