package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"dealdesk/pkg/core/normalize"
	"dealdesk/pkg/core/ratio"
	"dealdesk/pkg/models"
)

// Options controls a single analysis run.
type Options struct {
	// AnnualizeYTD displays each YTD period as a synthetic annualized
	// copy scaled by MonthsElapsed. Balance-sheet lines are never
	// scaled.
	AnnualizeYTD  bool
	MonthsElapsed float64

	// Benchmarks, when non-nil, adds a favorable/unfavorable verdict
	// per metric to every period.
	Benchmarks ratio.Benchmarks

	// Now anchors the sort position of YTD periods. Zero means
	// time.Now().
	Now time.Time
}

// Engine orchestrates earnings normalization and ratio analysis across
// the periods of a workbook.
type Engine struct{}

// NewEngine creates a new analysis engine.
func NewEngine() *Engine {
	return &Engine{}
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// periodSortYear orders periods chronologically by the last year
// mentioned in the period name. YTD periods sort at the current
// calendar year so they land after the historical fiscal years.
func periodSortYear(p *models.FinancialPeriod, now time.Time) int {
	if p.IsYTD {
		return now.Year()
	}
	matches := yearPattern.FindAllString(p.Name, -1)
	if len(matches) == 0 {
		return 0
	}
	year, _ := strconv.Atoi(matches[len(matches)-1])
	return year
}

// Analyze computes the full analysis for a workbook: normalized
// earnings and ratio metrics per period in chronological order, plus
// the NWC peg across the displayed periods.
func (e *Engine) Analyze(wb *models.CompanyWorkbook, opts Options) (*CompanyAnalysis, error) {
	if wb == nil {
		return nil, fmt.Errorf("workbook is nil")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	analysis := &CompanyAnalysis{
		Company:     wb.Company,
		GeneratedAt: now,
	}
	if len(wb.Periods) == 0 {
		return analysis, nil
	}

	// 1. Collect add-backs once; they apply uniformly to every period.
	addBacks := make([]float64, 0, len(wb.AddBacks))
	for _, ab := range wb.AddBacks {
		addBacks = append(addBacks, ab.Amount.Value)
	}
	ownerComp := wb.OwnerComp.Value

	// 2. Order the periods chronologically. Ties keep workbook order.
	ordered := make([]*models.FinancialPeriod, len(wb.Periods))
	copy(ordered, wb.Periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return periodSortYear(ordered[i], now) < periodSortYear(ordered[j], now)
	})

	// 3. Walk the sequence, threading each period's inputs through as
	// the prior for the next period's growth and averages.
	var prior *ratio.Inputs
	for _, p := range ordered {
		items := lineItems(p)
		name := p.Name
		synthetic := false
		if opts.AnnualizeYTD && p.IsYTD {
			items = normalize.Annualize(items, opts.MonthsElapsed)
			name = p.Name + " (Annualized)"
			synthetic = true
		}

		// A. Earnings waterfall.
		income := normalize.Normalize(items, addBacks, ownerComp)

		// B. Ratio and working-capital metrics against the prior
		// displayed period.
		inputs := ratioInputs(income, p)
		metrics := ratio.Compute(inputs, prior)

		pa := &PeriodAnalysis{
			PeriodID:    p.ID,
			PeriodName:  name,
			IsSynthetic: synthetic,
			SortYear:    periodSortYear(p, now),
			Income:      income,
			Metrics:     metrics,
		}
		if opts.Benchmarks != nil {
			pa.Benchmarks = opts.Benchmarks.Compare(metrics)
		}
		analysis.Periods = append(analysis.Periods, pa)

		cur := inputs
		prior = &cur
	}

	// 4. NWC peg across every displayed period.
	nwc := make([]float64, 0, len(analysis.Periods))
	for _, pa := range analysis.Periods {
		nwc = append(nwc, pa.Metrics.NetWorkingCapital)
	}
	analysis.NWCPeg = ratio.NWCPeg(nwc)

	return analysis, nil
}

// lineItems flattens a period's income-statement fields.
func lineItems(p *models.FinancialPeriod) normalize.LineItems {
	return normalize.LineItems{
		Revenue:           p.Revenue.Value,
		COGS:              p.COGS.Value,
		OperatingExpenses: p.OperatingExpenses.Value,
		Depreciation:      p.Depreciation.Value,
		Amortization:      p.Amortization.Value,
		InterestExpense:   p.InterestExpense.Value,
		Taxes:             p.Taxes.Value,
	}
}

// ratioInputs pairs normalized income lines with the period's raw
// balance-sheet lines.
func ratioInputs(income normalize.Result, p *models.FinancialPeriod) ratio.Inputs {
	return ratio.Inputs{
		Revenue:     income.Revenue,
		COGS:        income.COGS,
		GrossProfit: income.GrossProfit,
		EBITDA:      income.EBITDA,
		NetIncome:   income.NetIncome,
		Balance: ratio.BalanceItems{
			Cash:                    p.Cash.Value,
			AccountsReceivable:      p.AccountsReceivable.Value,
			Inventory:               p.Inventory.Value,
			OtherCurrentAssets:      p.OtherCurrentAssets.Value,
			LongTermAssets:          p.LongTermAssets.Value,
			AccountsPayable:         p.AccountsPayable.Value,
			ShortTermDebt:           p.ShortTermDebt.Value,
			OtherCurrentLiabilities: p.OtherCurrentLiabilities.Value,
			LongTermDebt:            p.LongTermDebt.Value,
			ShareholderEquity:       p.ShareholderEquity.Value,
		},
	}
}
