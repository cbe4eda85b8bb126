// Package workbook exposes workbook CRUD and document import over HTTP.
package workbook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"dealdesk/pkg/core/ingest"
	"dealdesk/pkg/core/workspace"
	"dealdesk/pkg/models"
)

// Handler holds dependencies for workbook endpoints
type Handler struct {
	Store workspace.Store
}

// NewHandler creates a new workbook handler
func NewHandler(store workspace.Store) *Handler {
	return &Handler{Store: store}
}

// HandleWorkbooks routes /api/workbooks: GET lists all workbooks, POST
// creates or updates one.
func (h *Handler) HandleWorkbooks(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case "GET":
		h.list(w, r)
	case "POST":
		h.upsert(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	wbs, err := h.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list workbooks: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"workbooks": wbs})
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var wb models.CompanyWorkbook
	if err := json.NewDecoder(r.Body).Decode(&wb); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(wb.Company) == "" {
		http.Error(w, "company is required", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	if wb.ID == "" {
		wb.ID = uuid.NewString()
		wb.CreatedAt = now
	}
	wb.UpdatedAt = now

	if err := h.Store.Put(r.Context(), &wb); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save workbook: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&wb)
}

// HandleWorkbook routes /api/workbook?id=...: GET fetches one workbook,
// DELETE removes it.
func (h *Handler) HandleWorkbook(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing 'id' query parameter", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		wb, err := h.Store.Get(r.Context(), id)
		if err != nil {
			http.Error(w, "Workbook not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wb)

	case "DELETE":
		if err := h.Store.Delete(r.Context(), id); err != nil {
			http.Error(w, "Workbook not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type ImportRequest struct {
	Format string `json:"format"` // "csv" or "html"
	Data   string `json:"data"`
	// Company names the new workbook when WorkbookID is empty.
	Company    string `json:"company"`
	WorkbookID string `json:"workbook_id"`
}

// HandleImport parses a pasted CSV or HTML statement into periods. Without
// a workbook_id it creates a fresh workbook around them; with one it appends
// to the existing workbook.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
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

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	var periods []*models.FinancialPeriod
	var err error
	switch strings.ToLower(req.Format) {
	case "csv":
		periods, err = ingest.ImportCSV(strings.NewReader(req.Data))
	case "html":
		periods, err = ingest.ImportHTML(req.Data)
	default:
		http.Error(w, "format must be 'csv' or 'html'", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Import failed: %v", err), http.StatusBadRequest)
		return
	}

	var wb *models.CompanyWorkbook
	if req.WorkbookID == "" {
		company := req.Company
		if company == "" {
			company = "Imported Company"
		}
		wb = models.NewCompanyWorkbook(company)
		wb.Periods = periods
	} else {
		wb, err = h.Store.Get(r.Context(), req.WorkbookID)
		if err != nil {
			http.Error(w, "Workbook not found", http.StatusNotFound)
			return
		}
		wb.Periods = append(wb.Periods, periods...)
		wb.UpdatedAt = time.Now().UTC()
	}

	if err := h.Store.Put(r.Context(), wb); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save workbook: %v", err), http.StatusInternalServerError)
		return
	}

	fmt.Printf("[WORKBOOK] Imported %d periods (%s) into %s\n", len(periods), strings.ToLower(req.Format), wb.Company)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wb)
}
