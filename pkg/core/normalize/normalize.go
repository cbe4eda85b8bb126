package normalize

// =============================================================================
// SDE / EBITDA NORMALIZATION ENGINE
// =============================================================================

// LineItems is one period's income statement after parsing. Expenses are
// entered as positive magnitudes and subtracted by the waterfall.
type LineItems struct {
	Revenue           float64
	COGS              float64
	OperatingExpenses float64
	Depreciation      float64
	Amortization      float64
	InterestExpense   float64
	Taxes             float64
}

// Annualize scales a partial-year income statement up to a full year.
// Only the trading lines (revenue, COGS, operating expenses) scale;
// below-the-line items and balance-sheet data are left as entered.
// monthsElapsed of 0 or less is treated as 1, and 12 or more is a no-op.
func Annualize(items LineItems, monthsElapsed float64) LineItems {
	if monthsElapsed <= 0 {
		monthsElapsed = 1
	}
	if monthsElapsed >= 12 {
		return items
	}
	factor := 12 / monthsElapsed
	out := items
	out.Revenue *= factor
	out.COGS *= factor
	out.OperatingExpenses *= factor
	return out
}

// Result is the profitability waterfall for one period.
// NormalizedSDE = NormalizedEBITDA + ownerComp holds for every input.
type Result struct {
	Revenue           float64 `json:"revenue"`
	COGS              float64 `json:"cogs"`
	OperatingExpenses float64 `json:"operating_expenses"`

	GrossProfit float64 `json:"gross_profit"`
	EBITDA      float64 `json:"ebitda"`
	EBIT        float64 `json:"ebit"`
	NetIncome   float64 `json:"net_income"`

	TotalAddBacks    float64 `json:"total_add_backs"`
	NormalizedEBITDA float64 `json:"normalized_ebitda"`
	NormalizedSDE    float64 `json:"normalized_sde"`
}

// Normalize applies discretionary add-backs and the owner-compensation
// add-back to a period's raw lines.
//
// GrossProfit = Revenue - COGS
// EBITDA      = GrossProfit - OperatingExpenses
// EBIT        = EBITDA - Depreciation - Amortization
// NetIncome   = EBIT - InterestExpense - Taxes
//
// ownerComp is tracked apart from the other add-backs: normalized EBITDA
// excludes it (a buyer replaces the owner with a salaried manager) while
// normalized SDE adds it back on top.
func Normalize(items LineItems, addBacks []float64, ownerComp float64) Result {
	grossProfit := items.Revenue - items.COGS
	ebitda := grossProfit - items.OperatingExpenses
	ebit := ebitda - items.Depreciation - items.Amortization
	netIncome := ebit - items.InterestExpense - items.Taxes

	var otherAddBacks float64
	for _, a := range addBacks {
		otherAddBacks += a
	}

	return Result{
		Revenue:           items.Revenue,
		COGS:              items.COGS,
		OperatingExpenses: items.OperatingExpenses,
		GrossProfit:       grossProfit,
		EBITDA:            ebitda,
		EBIT:              ebit,
		NetIncome:         netIncome,
		TotalAddBacks:     otherAddBacks + ownerComp,
		NormalizedEBITDA:  ebitda + otherAddBacks,
		NormalizedSDE:     ebitda + otherAddBacks + ownerComp,
	}
}
