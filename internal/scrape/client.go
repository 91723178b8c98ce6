package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Client fetches the member directory from the association website. It is
// deliberately polite: a fixed delay between member-page requests and
// exponential backoff on failures.
type Client struct {
	BaseURL         string
	HTTPClient      *http.Client
	Headers         map[string]string
	Cookies         map[string]string
	PageSize        int
	MaxRetries      int
	InitialDelay    time.Duration
	PolitenessDelay time.Duration
}

// NewClient creates a scraper client for the given site.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:         baseURL,
		HTTPClient:      &http.Client{Timeout: 30 * time.Second},
		Headers:         map[string]string{},
		Cookies:         map[string]string{},
		PageSize:        614,
		MaxRetries:      3,
		InitialDelay:    time.Second,
		PolitenessDelay: time.Second,
	}
}

// Member is one directory entry from the search endpoint. Members with
// contacts produce one RawContact per person; members without contacts fall
// back to a single record under the member name.
type Member struct {
	AssnID     string    `json:"assn_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Contacts   []Contact `json:"contact"`
}

// Contact is one person attached to a member entry.
type Contact struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Comms     []Comm `json:"comm"`
}

// Comm is a communication channel attached to a contact. Type "1" is email.
type Comm struct {
	TypeID string `json:"comm_type_id"`
	Number string `json:"comm_num"`
}

const emailCommType = "1"

// Email returns the contact's email address, if one is on file.
func (c Contact) Email() string {
	for _, comm := range c.Comms {
		if comm.TypeID == emailCommType {
			return comm.Number
		}
	}
	return ""
}

type searchPayload struct {
	GSearch      string `json:"g_search"`
	SearchLetter string `json:"search_letter"`
	SearchAll    string `json:"search_all"`
	Page         int    `json:"page"`
	PageSize     int    `json:"pageSize"`
}

type searchResponse struct {
	Directory struct {
		Members []Member `json:"member"`
	} `json:"Directory"`
}

// FetchDirectory pages through the directory search endpoint and returns
// every member entry.
func (c *Client) FetchDirectory(ctx context.Context) ([]Member, error) {
	var all []Member

	for page := 1; ; page++ {
		payload := searchPayload{
			SearchAll: "0",
			Page:      page,
			PageSize:  c.PageSize,
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode search payload: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/Member/SearchData", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		c.applyHeaders(req)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("directory search page %d failed: %w", page, err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("directory search page %d failed: unexpected status %s", page, resp.Status)
		}

		var parsed searchResponse
		err = json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode directory page %d: %w", page, err)
		}

		if len(parsed.Directory.Members) == 0 {
			break
		}

		all = append(all, parsed.Directory.Members...)
		log.Printf("Fetched directory page %d with %d members", page, len(parsed.Directory.Members))

		if len(parsed.Directory.Members) < c.PageSize {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PolitenessDelay / 2):
		}
	}

	return all, nil
}

// FetchMemberAddresses fetches one member's page and extracts its property
// and mailing address blocks, retrying with exponential backoff on failure.
func (c *Client) FetchMemberAddresses(ctx context.Context, m Member) (*AddressInfo, error) {
	memberID := m.AssnID + "~" + m.MemberID
	url := c.BaseURL + "/Member/" + memberID

	var lastErr error
	for attempt := 0; attempt < c.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		c.applyHeaders(req)

		resp, err := c.HTTPClient.Do(req)
		if err == nil && resp.StatusCode >= 400 {
			err = fmt.Errorf("unexpected status %s", resp.Status)
			resp.Body.Close()
		}
		if err == nil {
			info, extractErr := ExtractAddresses(resp.Body)
			resp.Body.Close()
			if extractErr != nil {
				return nil, extractErr
			}
			return info, nil
		}

		lastErr = err
		if attempt < c.MaxRetries-1 {
			delay := c.InitialDelay * (1 << attempt)
			log.Printf("Attempt %d failed for member %s: %v; retrying in %v", attempt+1, memberID, err, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, fmt.Errorf("all %d attempts failed for member %s: %w", c.MaxRetries, memberID, lastErr)
}

func (c *Client) applyHeaders(req *http.Request) {
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range c.Cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
}
