// Package analysis exposes the normalization and ratio engine over HTTP.
package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"

	coreAnalysis "dealdesk/pkg/core/analysis"
	"dealdesk/pkg/core/ratio"
	"dealdesk/pkg/models"
)

// Benchmark table loaded at startup.
var benchmarks ratio.Benchmarks

// InitHandler wires the benchmark table used for favorable/unfavorable flags.
func InitHandler(b ratio.Benchmarks) {
	benchmarks = b
}

type AnalyzeRequest struct {
	Workbook     *models.CompanyWorkbook `json:"workbook"`
	AnnualizeYTD bool                    `json:"annualize_ytd"`
	// MonthsElapsed overrides the workbook's ytd_months when positive.
	MonthsElapsed float64 `json:"months_elapsed"`
	// Benchmarks overrides the server's benchmark table for this request.
	Benchmarks ratio.Benchmarks `json:"benchmarks,omitempty"`
}

// HandleAnalyze runs the full normalization and ratio pass over a workbook
// and returns the per-period analysis.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
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

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Workbook == nil {
		http.Error(w, "workbook is required", http.StatusBadRequest)
		return
	}

	months := req.MonthsElapsed
	if months <= 0 {
		months = req.Workbook.YTDMonths.Value
	}
	bench := benchmarks
	if len(req.Benchmarks) > 0 {
		bench = req.Benchmarks
	}

	engine := coreAnalysis.NewEngine()
	result, err := engine.Analyze(req.Workbook, coreAnalysis.Options{
		AnnualizeYTD:  req.AnnualizeYTD,
		MonthsElapsed: months,
		Benchmarks:    bench,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusBadRequest)
		return
	}

	fmt.Printf("[ANALYSIS] %s: %d periods analyzed\n", req.Workbook.Company, len(result.Periods))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
