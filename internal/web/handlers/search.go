package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/hoa-reconcile/internal/match"
)

// SearchHandler ranks match results against a free-text query.
type SearchHandler struct {
	Results []match.Result
	Config  *Config
}

// SearchResult is one ranked search hit.
type SearchResult struct {
	Result     ResultView `json:"result"`
	Similarity float64    `json:"similarity"`
}

// SearchResults finds the results whose names or addresses best resemble the
// query, ranked by Jaro-Winkler similarity.
func (h *SearchHandler) SearchResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	searchTerm := strings.ToLower(strings.TrimSpace(query.Get("q")))
	if searchTerm == "" {
		http.Error(w, "Search term required", http.StatusBadRequest)
		return
	}

	limit := parseIntParam(query.Get("limit"), h.Config.Features.SearchLimit)
	if limit < 1 {
		limit = h.Config.Features.SearchLimit
	}
	if limit > 200 {
		limit = 200
	}

	var hits []SearchResult
	for i, result := range h.Results {
		similarity := bestSimilarity(searchTerm, searchFields(result))
		if similarity < 0.6 {
			continue
		}
		hits = append(hits, SearchResult{
			Result:     viewOf(i, result),
			Similarity: similarity,
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	if hits == nil {
		hits = []SearchResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hits)
}

// searchFields collects the searchable text of a result row.
func searchFields(result match.Result) []string {
	var fields []string
	if result.Owner != nil {
		fields = append(fields,
			result.Owner.FirstName+" "+result.Owner.LastName,
			result.Owner.LastName,
			result.Owner.Street,
			result.Owner.Email,
		)
	}
	if result.Household != nil {
		fields = append(fields,
			result.Household.FirstName+" "+result.Household.LastName,
			result.Household.LastName,
			result.Household.PropertyStreet,
		)
		fields = append(fields, result.Household.Emails...)
	}
	return fields
}

func bestSimilarity(term string, fields []string) float64 {
	best := 0.0
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		similarity := smetrics.JaroWinkler(term, field, 0.7, 4)
		if strings.Contains(field, term) && similarity < 0.9 {
			similarity = 0.9
		}
		if similarity > best {
			best = similarity
		}
	}
	return best
}
