// Package export exposes the analysis grid as JSON or a CSV download.
package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dealdesk/pkg/core/analysis"
	coreExport "dealdesk/pkg/core/export"
	"dealdesk/pkg/models"
)

type ExportRequest struct {
	Workbook     *models.CompanyWorkbook `json:"workbook"`
	AnnualizeYTD bool                    `json:"annualize_ytd"`
	Format       string                  `json:"format"` // "raw" or "currency"
	// CSV switches the response from a JSON grid to a CSV attachment.
	CSV bool `json:"csv"`
}

// HandleExport analyzes a workbook and returns the metric grid, either as
// JSON rows or as a downloadable CSV.
func HandleExport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Workbook == nil {
		http.Error(w, "workbook is required", http.StatusBadRequest)
		return
	}

	engine := analysis.NewEngine()
	result, err := engine.Analyze(req.Workbook, analysis.Options{
		AnnualizeYTD:  req.AnnualizeYTD,
		MonthsElapsed: req.Workbook.YTDMonths.Value,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusBadRequest)
		return
	}

	format := coreExport.Format(req.Format)
	if format != coreExport.FormatCurrency {
		format = coreExport.FormatRaw
	}
	grid := coreExport.BuildGrid(result, format)

	if req.CSV {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", models.Slug(req.Workbook.Company)))
		if err := coreExport.WriteCSV(w, grid); err != nil {
			fmt.Printf("[EXPORT] CSV write failed: %v\n", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grid)
}
