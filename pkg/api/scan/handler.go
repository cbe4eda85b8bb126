// Package scan exposes the document extraction agent over HTTP.
package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dealdesk/pkg/core/ingest"
	coreScan "dealdesk/pkg/core/scan"
	"dealdesk/pkg/core/workspace"
	"dealdesk/pkg/models"
)

var scanner coreScan.DocumentScanner
var workbooks workspace.Store

// InitHandler wires the document scanner and the workbook store used for
// merging extracted records.
func InitHandler(s coreScan.DocumentScanner, ws workspace.Store) {
	scanner = s
	workbooks = ws
}

type ScanRequest struct {
	Document string `json:"document"`
	// WorkbookID, when set, merges the extracted records into that
	// workbook's periods and returns the updated workbook.
	WorkbookID string `json:"workbook_id"`
}

type ScanResponse struct {
	Records  []ingest.ScanRecord     `json:"records"`
	Workbook *models.CompanyWorkbook `json:"workbook,omitempty"`
}

// HandleScan extracts annual financial records from a pasted document
// (CIM excerpt, broker teaser, tax return text).
func HandleScan(w http.ResponseWriter, r *http.Request) {
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

	if scanner == nil {
		http.Error(w, "Document scanner not configured", http.StatusServiceUnavailable)
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Document) == "" {
		http.Error(w, "document is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	fmt.Printf("[SCAN] Scanning document (%d bytes)\n", len(req.Document))
	records, err := scanner.ScanDocument(ctx, req.Document)
	if err != nil {
		http.Error(w, fmt.Sprintf("Scan failed: %v", err), http.StatusInternalServerError)
		return
	}

	resp := ScanResponse{Records: records}

	if req.WorkbookID != "" && workbooks != nil {
		wb, err := workbooks.Get(r.Context(), req.WorkbookID)
		if err != nil {
			http.Error(w, "Workbook not found", http.StatusNotFound)
			return
		}
		wb.Periods = ingest.MergeScan(wb.Periods, records)
		wb.UpdatedAt = time.Now().UTC()
		if err := workbooks.Put(r.Context(), wb); err != nil {
			http.Error(w, fmt.Sprintf("Failed to save workbook: %v", err), http.StatusInternalServerError)
			return
		}
		resp.Workbook = wb
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
