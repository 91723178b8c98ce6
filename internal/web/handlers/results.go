package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hoa-reconcile/internal/match"
	"github.com/hoa-reconcile/internal/roster"
)

// Config represents the web server configuration (simplified)
type Config struct {
	Features struct {
		ExportEnabled bool `json:"export_enabled"`
		SearchLimit   int  `json:"search_limit"`
	} `json:"features"`
}

// ResultsHandler serves the match results held in memory for review.
type ResultsHandler struct {
	Results []match.Result
	Config  *Config
}

// OwnerView is the JSON shape of one owner record.
type OwnerView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	StateZip  string `json:"state_zip"`
}

// HouseholdView is the JSON shape of one condensed household record.
type HouseholdView struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Emails         []string `json:"emails"`
	PropertyStreet string   `json:"property_street"`
	MailingStreet  string   `json:"mailing_street"`
	City           string   `json:"city"`
	StateZip       string   `json:"state_zip"`
	IsCompany      bool     `json:"is_company"`
	OccupantCount  int      `json:"occupant_count"`
}

// ResultView is the JSON shape of one match result row.
type ResultView struct {
	Index     int            `json:"index"`
	Owner     *OwnerView     `json:"owner"`
	Household *HouseholdView `json:"household"`
	Score     int            `json:"score"`
	Details   match.Details  `json:"details"`
	Type      string         `json:"type"`
	Flags     []string       `json:"flags"`
}

// ListResults returns match results, optionally filtered by type, flag and
// minimum score.
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	matchType := query.Get("type")
	flag := query.Get("flag")
	minScore := parseIntParam(query.Get("min_score"), 0)

	var views []ResultView
	for i, result := range h.Results {
		if matchType != "" && string(result.Type) != matchType {
			continue
		}
		if flag != "" && !result.Flags.Has(match.Flag(flag)) {
			continue
		}
		if result.Score < minScore {
			continue
		}
		views = append(views, viewOf(i, result))
	}
	if views == nil {
		views = []ResultView{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// GetResult returns a single match result by its position in the run output.
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 || index >= len(h.Results) {
		http.Error(w, "Result not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(viewOf(index, h.Results[index]))
}

func viewOf(index int, result match.Result) ResultView {
	view := ResultView{
		Index:   index,
		Score:   result.Score,
		Details: result.Details,
		Type:    string(result.Type),
		Flags:   result.Flags.Names(),
	}
	if result.Owner != nil {
		view.Owner = ownerView(result.Owner)
	}
	if result.Household != nil {
		view.Household = householdView(result.Household)
	}
	return view
}

func ownerView(owner *roster.OwnerRecord) *OwnerView {
	return &OwnerView{
		FirstName: owner.FirstName,
		LastName:  owner.LastName,
		Email:     owner.Email,
		Street:    owner.Street,
		City:      owner.City,
		StateZip:  owner.StateZip,
	}
}

func householdView(household *roster.HouseholdRecord) *HouseholdView {
	return &HouseholdView{
		FirstName:      household.FirstName,
		LastName:       household.LastName,
		Emails:         household.Emails,
		PropertyStreet: household.PropertyStreet,
		MailingStreet:  household.MailingStreet,
		City:           household.PropertyCity,
		StateZip:       household.PropertyStateZip,
		IsCompany:      household.IsCompany,
		OccupantCount:  household.OccupantCount,
	}
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
