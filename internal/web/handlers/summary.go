package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hoa-reconcile/internal/match"
)

// SummaryHandler serves run-level statistics and flag metadata.
type SummaryHandler struct {
	Results []match.Result
	Config  *Config
}

// SummaryResponse carries the run counts plus derived percentages.
type SummaryResponse struct {
	Summary     match.Summary  `json:"summary"`
	ExactRate   float64        `json:"exact_rate"`
	FuzzyRate   float64        `json:"fuzzy_rate"`
	NoMatchRate float64        `json:"no_match_rate"`
	FlagCounts  map[string]int `json:"flag_counts"`
}

// FlagMetadata describes one flag for client-side tooltips.
type FlagMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// GetSummary returns the match counts, rates and per-flag totals.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary := match.Summarize(h.Results)

	flagCounts := make(map[string]int)
	for _, result := range h.Results {
		for _, name := range result.Flags.Names() {
			flagCounts[name]++
		}
	}

	response := SummaryResponse{
		Summary:     summary,
		ExactRate:   summary.Percent(summary.Exact),
		FuzzyRate:   summary.Percent(summary.Fuzzy),
		NoMatchRate: summary.Percent(summary.NoMatch),
		FlagCounts:  flagCounts,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetFlags returns the description and example for every known flag.
func (h *SummaryHandler) GetFlags(w http.ResponseWriter, r *http.Request) {
	var metadata []FlagMetadata
	for _, flag := range match.AllFlags() {
		info := flag.Info()
		metadata = append(metadata, FlagMetadata{
			Name:        string(flag),
			Description: info.Description,
			Example:     info.Example,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metadata)
}
