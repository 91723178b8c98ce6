package scrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AddressInfo holds the address blocks extracted from one member page, as
// line slices (street, then "city, state zip"). A page without a separate
// mailing block reuses the property address.
type AddressInfo struct {
	PropertyAddress []string
	MailingAddress  []string
}

// ExtractAddresses parses a member page and pulls out the property and
// mailing address blocks. Each block is a div#address_part; the block is a
// mailing address when the nearest preceding td.clsDMHeader says so.
func ExtractAddresses(r io.Reader) (*AddressInfo, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member page: %w", err)
	}

	info := &AddressInfo{}

	doc.Find("div#address_part").Each(func(_ int, s *goquery.Selection) {
		lines := addressLines(s)
		if strings.Contains(previousHeader(s), "Mailing Address") {
			info.MailingAddress = lines
		} else {
			info.PropertyAddress = lines
		}
	})

	if info.MailingAddress == nil {
		info.MailingAddress = info.PropertyAddress
	}

	return info, nil
}

// addressLines flattens an address block into trimmed, non-empty lines.
func addressLines(s *goquery.Selection) []string {
	var lines []string
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		for _, line := range strings.Split(c.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})
	return lines
}

// previousHeader finds the text of the closest td.clsDMHeader appearing
// before the selection in document order, walking up through ancestors and
// scanning their earlier siblings.
func previousHeader(s *goquery.Selection) string {
	for cur := s; cur.Length() > 0; cur = cur.Parent() {
		found := ""
		cur.PrevAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if sib.Is("td.clsDMHeader") {
				found = strings.TrimSpace(sib.Text())
				return false
			}
			if h := sib.Find("td.clsDMHeader"); h.Length() > 0 {
				// Last header inside the sibling is the closest one.
				found = strings.TrimSpace(h.Last().Text())
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
		if cur.Is("html") {
			break
		}
	}
	return ""
}
