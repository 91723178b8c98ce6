package handlers

import (
	"log"
	"net/http"

	"github.com/hoa-reconcile/internal/importer"
	"github.com/hoa-reconcile/internal/match"
)

// ExportHandler streams the match results as a CSV download.
type ExportHandler struct {
	Results []match.Result
	Config  *Config
}

// ExportCSV writes the full result set in the same CSV layout the command
// line run produces.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="match_results.csv"`)

	if err := importer.WriteResultsTo(w, h.Results); err != nil {
		log.Printf("export failed: %v", err)
	}
}
