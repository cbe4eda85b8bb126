// Package buybox exposes scorecard generation and fit scoring over HTTP.
package buybox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	coreBuybox "dealdesk/pkg/core/buybox"
	"dealdesk/pkg/core/scorecard"
	"dealdesk/pkg/models"
)

// Scorecard generator backed by an LLM provider. Nil when no provider is
// configured, in which case only fit scoring is available.
var generator *scorecard.Generator

// InitHandler wires the scorecard generator.
func InitHandler(g *scorecard.Generator) {
	generator = g
}

type FitScoreRequest struct {
	Scorecard string                `json:"scorecard"`
	Criteria  models.BuyBoxCriteria `json:"criteria"`
}

// FitScoreResponse reports the fit score on a 0-100 scale plus the summed
// criteria weight behind it.
type FitScoreResponse struct {
	Score       int `json:"score"`
	TotalWeight int `json:"total_weight"`
}

// HandleFitScore scores an existing Markdown scorecard against the buy-box
// criteria weights. Pure computation, no LLM call.
func HandleFitScore(w http.ResponseWriter, r *http.Request) {
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

	var req FitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Scorecard) == "" {
		http.Error(w, "scorecard is required", http.StatusBadRequest)
		return
	}

	resp := FitScoreResponse{
		Score:       coreBuybox.Score(req.Scorecard, req.Criteria),
		TotalWeight: coreBuybox.TotalPossible(coreBuybox.Weights(req.Criteria)),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type GenerateRequest struct {
	Criteria models.BuyBoxCriteria `json:"criteria"`
	Profile  string                `json:"profile"`
}

type GenerateResponse struct {
	Scorecard   string `json:"scorecard"`
	Score       int    `json:"score"`
	TotalWeight int    `json:"total_weight"`
}

// HandleGenerate asks the LLM for a Markdown scorecard comparing a company
// profile against the buy-box, then scores the result.
func HandleGenerate(w http.ResponseWriter, r *http.Request) {
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

	if generator == nil {
		http.Error(w, "Scorecard generator not configured", http.StatusServiceUnavailable)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Profile) == "" {
		http.Error(w, "profile is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	md, err := generator.Generate(ctx, req.Criteria, req.Profile)
	if err != nil {
		http.Error(w, fmt.Sprintf("Scorecard generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	score := coreBuybox.Score(md, req.Criteria)
	fmt.Printf("[BUYBOX] Scorecard generated, fit score %d\n", score)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GenerateResponse{
		Scorecard:   md,
		Score:       score,
		TotalWeight: coreBuybox.TotalPossible(coreBuybox.Weights(req.Criteria)),
	})
}
