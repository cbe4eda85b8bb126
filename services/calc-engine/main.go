// Command calc-engine runs one calculation per invocation and prints the
// result as JSON on stdout. It exists for spreadsheet plugins and scripts
// that want the engine without running the API server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"dealdesk/pkg/core/analysis"
	"dealdesk/pkg/core/buybox"
	"dealdesk/pkg/core/dealstructure"
	"dealdesk/pkg/core/normalize"
	"dealdesk/pkg/core/projection"
	"dealdesk/pkg/core/ratio"
	"dealdesk/pkg/models"
)

func main() {
	mode := flag.String("mode", "", "Mode: normalize, ratios, analyze, deal, projection or fitscore")
	dataStr := flag.String("data", "", "JSON data payload")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}
	payload := []byte(*dataStr)

	var out interface{}
	var err error
	switch *mode {
	case "normalize":
		out, err = runNormalize(payload)
	case "ratios":
		out, err = runRatios(payload)
	case "analyze":
		out, err = runAnalyze(payload)
	case "deal":
		out, err = runDeal(payload)
	case "projection":
		out, err = runProjection(payload)
	case "fitscore":
		out, err = runFitScore(payload)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	json.NewEncoder(os.Stdout).Encode(out)
}

type normalizeRequest struct {
	Items struct {
		Revenue           float64 `json:"revenue"`
		COGS              float64 `json:"cogs"`
		OperatingExpenses float64 `json:"operating_expenses"`
		Depreciation      float64 `json:"depreciation"`
		Amortization      float64 `json:"amortization"`
		InterestExpense   float64 `json:"interest_expense"`
		Taxes             float64 `json:"taxes"`
	} `json:"items"`
	AddBacks  []float64 `json:"add_backs"`
	OwnerComp float64   `json:"owner_comp"`
	// MonthsElapsed between 1 and 11 annualizes the trading lines first.
	MonthsElapsed float64 `json:"months_elapsed"`
}

func runNormalize(data []byte) (interface{}, error) {
	var req normalizeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}

	items := normalize.LineItems{
		Revenue:           req.Items.Revenue,
		COGS:              req.Items.COGS,
		OperatingExpenses: req.Items.OperatingExpenses,
		Depreciation:      req.Items.Depreciation,
		Amortization:      req.Items.Amortization,
		InterestExpense:   req.Items.InterestExpense,
		Taxes:             req.Items.Taxes,
	}
	if req.MonthsElapsed > 0 && req.MonthsElapsed < 12 {
		items = normalize.Annualize(items, req.MonthsElapsed)
	}

	return normalize.Normalize(items, req.AddBacks, req.OwnerComp), nil
}

type workbookRequest struct {
	Workbook      *models.CompanyWorkbook `json:"workbook"`
	AnnualizeYTD  bool                    `json:"annualize_ytd"`
	MonthsElapsed float64                 `json:"months_elapsed"`
}

func analyzeWorkbook(data []byte) (*analysis.CompanyAnalysis, error) {
	var req workbookRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}
	if req.Workbook == nil {
		return nil, fmt.Errorf("workbook is required")
	}

	months := req.MonthsElapsed
	if months <= 0 {
		months = req.Workbook.YTDMonths.Value
	}

	engine := analysis.NewEngine()
	return engine.Analyze(req.Workbook, analysis.Options{
		AnnualizeYTD:  req.AnnualizeYTD,
		MonthsElapsed: months,
		Benchmarks:    ratio.DefaultBenchmarks(),
	})
}

func runAnalyze(data []byte) (interface{}, error) {
	return analyzeWorkbook(data)
}

type ratiosRow struct {
	PeriodName string              `json:"period_name"`
	Metrics    ratio.PeriodMetrics `json:"metrics"`
	Benchmarks map[string]bool     `json:"benchmarks,omitempty"`
}

type ratiosResponse struct {
	Periods []ratiosRow `json:"periods"`
	NWCPeg  float64     `json:"nwc_peg"`
}

func runRatios(data []byte) (interface{}, error) {
	result, err := analyzeWorkbook(data)
	if err != nil {
		return nil, err
	}

	resp := ratiosResponse{NWCPeg: result.NWCPeg}
	for _, p := range result.Periods {
		resp.Periods = append(resp.Periods, ratiosRow{
			PeriodName: p.PeriodName,
			Metrics:    p.Metrics,
			Benchmarks: p.Benchmarks,
		})
	}
	return resp, nil
}

type dealRequest struct {
	Inputs models.DealStructureInputs `json:"inputs"`
}

type dealResponse struct {
	Result   dealstructure.Result  `json:"result"`
	Stressed *dealstructure.Result `json:"stressed,omitempty"`
}

func runDeal(data []byte) (interface{}, error) {
	var req dealRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}

	in := dealstructure.FromModel(req.Inputs)

	base := in
	base.Stressed = false
	resp := dealResponse{Result: dealstructure.Compute(base)}
	if in.Stressed {
		stressed := dealstructure.Compute(in)
		resp.Stressed = &stressed
	}
	return resp, nil
}

type projectionRequest struct {
	Assumptions models.ProjectionAssumptions `json:"assumptions"`
}

func runProjection(data []byte) (interface{}, error) {
	var req projectionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}

	engine := projection.NewEngine()
	return engine.Project(projection.FromModel(req.Assumptions)), nil
}

type fitScoreRequest struct {
	Scorecard string                `json:"scorecard"`
	Criteria  models.BuyBoxCriteria `json:"criteria"`
}

type fitScoreResponse struct {
	Score       int `json:"score"`
	TotalWeight int `json:"total_weight"`
}

func runFitScore(data []byte) (interface{}, error) {
	var req fitScoreRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}
	if req.Scorecard == "" {
		return nil, fmt.Errorf("scorecard is required")
	}

	return fitScoreResponse{
		Score:       buybox.Score(req.Scorecard, req.Criteria),
		TotalWeight: buybox.TotalPossible(buybox.Weights(req.Criteria)),
	}, nil
}
