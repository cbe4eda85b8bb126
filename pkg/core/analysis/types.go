package analysis

import (
	"time"

	"dealdesk/pkg/core/normalize"
	"dealdesk/pkg/core/ratio"
)

// CompanyAnalysis is the complete derived view of one workbook:
// normalized profitability and ratios for every displayed period plus
// the working-capital peg.
type CompanyAnalysis struct {
	Company     string            `json:"company"`
	Periods     []*PeriodAnalysis `json:"periods"`
	NWCPeg      float64           `json:"nwc_peg"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// PeriodAnalysis holds one displayed period's derived metrics.
// A synthetic period is an annualized stand-in for a YTD period.
type PeriodAnalysis struct {
	PeriodID    string `json:"period_id"`
	PeriodName  string `json:"period_name"`
	IsSynthetic bool   `json:"is_synthetic"`
	SortYear    int    `json:"sort_year"`

	// 1. Earnings waterfall (gross profit through normalized SDE)
	Income normalize.Result `json:"income"`

	// 2. Margin, liquidity and efficiency ratios
	Metrics ratio.PeriodMetrics `json:"metrics"`

	// 3. Benchmark comparisons keyed by metric, when benchmarks were
	// supplied (true means favorable)
	Benchmarks map[string]bool `json:"benchmarks,omitempty"`
}
