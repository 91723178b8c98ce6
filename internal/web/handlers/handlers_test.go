package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hoa-reconcile/internal/match"
	"github.com/hoa-reconcile/internal/roster"
)

func testConfig() *Config {
	config := &Config{}
	config.Features.ExportEnabled = true
	config.Features.SearchLimit = 50
	return config
}

func testResults() []match.Result {
	return []match.Result{
		{
			Owner: &roster.OwnerRecord{
				FirstName: "John",
				LastName:  "Doe",
				Email:     "jdoe@example.com",
				Street:    "123 Main St",
				City:      "Springfield",
				StateZip:  "IL 62701",
			},
			Household: &roster.HouseholdRecord{
				FirstName:      "John",
				LastName:       "Doe",
				Emails:         []string{"jdoe@example.com"},
				PropertyStreet: "123 Main Street",
				OccupantCount:  1,
				EmailCount:     1,
			},
			Score:   100,
			Details: match.Details{EmailMatch: true, LastNameMatch: true, AddressMatch: true},
			Type:    match.MatchExact,
			Flags:   match.NewFlagSet(match.FlagHighConfidenceMatch),
		},
		{
			Owner: &roster.OwnerRecord{
				FirstName: "Jane",
				LastName:  "Cunningham",
				Street:    "9 Oak Ave",
			},
			Household: &roster.HouseholdRecord{
				FirstName:      "Jane",
				LastName:       "Cunninghan",
				PropertyStreet: "9 Oak Avenue",
				OccupantCount:  1,
			},
			Score:   50,
			Details: match.Details{LastNameMatch: true, AddressMatch: true},
			Type:    match.MatchFuzzy,
			Flags:   match.NewFlagSet(match.FlagNoEmails, match.FlagLowConfidenceMatch),
		},
		{
			Owner: &roster.OwnerRecord{
				FirstName: "Gone",
				LastName:  "Resident",
				Street:    "1 Elm Ct",
			},
			Score: 0,
			Type:  match.MatchNone,
			Flags: match.NewFlagSet(match.FlagRecordRemoved),
		},
	}
}

func TestListResults(t *testing.T) {
	handler := &ResultsHandler{Results: testResults(), Config: testConfig()}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"no filter", "", 3},
		{"type exact", "?type=Exact", 1},
		{"type no match", "?type=No+Match", 1},
		{"flag filter", "?flag=NO_EMAILS", 1},
		{"min score", "?min_score=50", 2},
		{"combined", "?type=Fuzzy&min_score=60", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/results"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.ListResults(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}

			var views []ResultView
			if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(views) != tt.want {
				t.Errorf("got %d results, want %d", len(views), tt.want)
			}
		})
	}
}

func TestListResultsViewShape(t *testing.T) {
	handler := &ResultsHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/results?type=Exact", nil)
	rec := httptest.NewRecorder()
	handler.ListResults(rec, req)

	var views []ResultView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d results, want 1", len(views))
	}

	view := views[0]
	if view.Owner == nil || view.Owner.LastName != "Doe" {
		t.Errorf("owner not populated: %+v", view.Owner)
	}
	if view.Household == nil || view.Household.PropertyStreet != "123 Main Street" {
		t.Errorf("household not populated: %+v", view.Household)
	}
	if !view.Details.EmailMatch {
		t.Error("expected email match detail")
	}
	if len(view.Flags) != 1 || view.Flags[0] != "HIGH_CONFIDENCE_MATCH" {
		t.Errorf("flags = %v", view.Flags)
	}
}

func TestGetResultNotFound(t *testing.T) {
	handler := &ResultsHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/results/99", nil)
	rec := httptest.NewRecorder()
	handler.GetResult(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSearchResults(t *testing.T) {
	handler := &SearchHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/results/search?q=cunningham", nil)
	rec := httptest.NewRecorder()
	handler.SearchResults(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var hits []SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].Result.Owner.LastName != "Cunningham" {
		t.Errorf("top hit = %s, want Cunningham", hits[0].Result.Owner.LastName)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Similarity > hits[i-1].Similarity {
			t.Error("hits not sorted by similarity")
		}
	}
}

func TestSearchNegativeLimit(t *testing.T) {
	handler := &SearchHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/results/search?q=cunningham&limit=-1", nil)
	rec := httptest.NewRecorder()
	handler.SearchResults(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var hits []SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(hits) == 0 {
		t.Error("expected hits under the default limit")
	}
}

func TestSearchRequiresTerm(t *testing.T) {
	handler := &SearchHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/results/search", nil)
	rec := httptest.NewRecorder()
	handler.SearchResults(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetSummary(t *testing.T) {
	handler := &SummaryHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/summary", nil)
	rec := httptest.NewRecorder()
	handler.GetSummary(rec, req)

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if response.Summary.Total != 3 {
		t.Errorf("total = %d, want 3", response.Summary.Total)
	}
	if response.Summary.Exact != 1 || response.Summary.Fuzzy != 1 || response.Summary.NoMatch != 1 {
		t.Errorf("counts = %+v", response.Summary)
	}
	if response.FlagCounts["RECORD_REMOVED"] != 1 {
		t.Errorf("flag counts = %v", response.FlagCounts)
	}
}

func TestGetFlags(t *testing.T) {
	handler := &SummaryHandler{Results: nil, Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/flags", nil)
	rec := httptest.NewRecorder()
	handler.GetFlags(rec, req)

	var metadata []FlagMetadata
	if err := json.Unmarshal(rec.Body.Bytes(), &metadata); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(metadata) != len(match.AllFlags()) {
		t.Fatalf("got %d flags, want %d", len(metadata), len(match.AllFlags()))
	}
	for _, m := range metadata {
		if m.Description == "" {
			t.Errorf("flag %s has no description", m.Name)
		}
	}
}

func TestExportCSV(t *testing.T) {
	handler := &ExportHandler{Results: testResults(), Config: testConfig()}

	req := httptest.NewRequest("GET", "/api/export", nil)
	rec := httptest.NewRecorder()
	handler.ExportCSV(rec, req)

	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("content type = %q", got)
	}

	body := rec.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows", len(lines))
	}
	if !strings.Contains(lines[0], "Match_Score") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(body, "RECORD_REMOVED") {
		t.Error("expected RECORD_REMOVED row in export")
	}
}
