// Package deal exposes the deal structure calculator over HTTP.
package deal

import (
	"encoding/json"
	"net/http"

	"dealdesk/pkg/core/dealstructure"
	"dealdesk/pkg/models"
)

type StructureRequest struct {
	Inputs models.DealStructureInputs `json:"inputs"`
}

// StructureResponse always carries the base case. The stressed column is
// present only when the request asked for a stress run.
type StructureResponse struct {
	Result   dealstructure.Result  `json:"result"`
	Stressed *dealstructure.Result `json:"stressed,omitempty"`
}

// HandleStructure computes enterprise value, debt service and DSCR for a
// proposed deal structure.
func HandleStructure(w http.ResponseWriter, r *http.Request) {
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

	var req StructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	in := dealstructure.FromModel(req.Inputs)

	base := in
	base.Stressed = false
	resp := StructureResponse{Result: dealstructure.Compute(base)}

	if in.Stressed {
		stressed := dealstructure.Compute(in)
		resp.Stressed = &stressed
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
