// Package snapshot exposes Postgres-backed deal snapshots over HTTP. All
// endpoints answer 503 when no database was configured at startup.
package snapshot

import (
	"encoding/json"
	"fmt"
	"net/http"

	coreAnalysis "dealdesk/pkg/core/analysis"
	"dealdesk/pkg/core/ratio"
	"dealdesk/pkg/core/store"
	"dealdesk/pkg/models"
)

var repo *store.SnapshotRepo
var benchmarks ratio.Benchmarks

// InitHandler wires the snapshot repository and the benchmark table used
// when re-analyzing on save.
func InitHandler(r *store.SnapshotRepo, b ratio.Benchmarks) {
	repo = r
	benchmarks = b
}

func available() bool {
	return repo != nil && store.GetPool() != nil
}

type SaveRequest struct {
	Workbook     *models.CompanyWorkbook `json:"workbook"`
	AnnualizeYTD bool                    `json:"annualize_ytd"`
}

// HandleSave analyzes the workbook and persists both as the company's
// current snapshot.
func HandleSave(w http.ResponseWriter, r *http.Request) {
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
	if !available() {
		http.Error(w, "Snapshot storage not configured", http.StatusServiceUnavailable)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Workbook == nil {
		http.Error(w, "workbook is required", http.StatusBadRequest)
		return
	}

	engine := coreAnalysis.NewEngine()
	result, err := engine.Analyze(req.Workbook, coreAnalysis.Options{
		AnnualizeYTD:  req.AnnualizeYTD,
		MonthsElapsed: req.Workbook.YTDMonths.Value,
		Benchmarks:    benchmarks,
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusBadRequest)
		return
	}

	if err := repo.Save(r.Context(), req.Workbook, result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save snapshot: %v", err), http.StatusInternalServerError)
		return
	}

	slug := models.Slug(req.Workbook.Company)
	fmt.Printf("[SNAPSHOT] Saved %s\n", slug)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved", "company_slug": slug})
}

type LoadResponse struct {
	Workbook *models.CompanyWorkbook       `json:"workbook"`
	Analysis *coreAnalysis.CompanyAnalysis `json:"analysis"`
}

// HandleLoad returns the stored snapshot for /api/snapshot?slug=...
func HandleLoad(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if !available() {
		http.Error(w, "Snapshot storage not configured", http.StatusServiceUnavailable)
		return
	}

	slug := r.URL.Query().Get("slug")
	if slug == "" {
		http.Error(w, "Missing 'slug' query parameter", http.StatusBadRequest)
		return
	}

	wb, result, err := repo.Load(r.Context(), slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoadResponse{Workbook: wb, Analysis: result})
}

// HandleList returns all stored snapshots, newest first.
func HandleList(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if !available() {
		http.Error(w, "Snapshot storage not configured", http.StatusServiceUnavailable)
		return
	}

	infos, err := repo.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list snapshots: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]store.SnapshotInfo{"snapshots": infos})
}
