// Package projection exposes the three-year pro forma engine over HTTP.
package projection

import (
	"encoding/json"
	"net/http"

	coreProjection "dealdesk/pkg/core/projection"
	"dealdesk/pkg/models"
)

type ProjectRequest struct {
	Assumptions models.ProjectionAssumptions `json:"assumptions"`
}

// HandleProject builds the monthly year-1 and annual year-2/3 pro forma
// from a set of growth and cost assumptions.
func HandleProject(w http.ResponseWriter, r *http.Request) {
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

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	engine := coreProjection.NewEngine()
	result := engine.Project(coreProjection.FromModel(req.Assumptions))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
