package ratio

// =============================================================================
// RATIO & WORKING CAPITAL ANALYZER
// =============================================================================

// BalanceItems is one period's balance sheet after parsing.
type BalanceItems struct {
	Cash                    float64
	AccountsReceivable      float64
	Inventory               float64
	OtherCurrentAssets      float64
	LongTermAssets          float64
	AccountsPayable         float64
	ShortTermDebt           float64
	OtherCurrentLiabilities float64
	LongTermDebt            float64
	ShareholderEquity       float64
}

// Inputs bundles the figures the analyzer reads for one period.
type Inputs struct {
	Revenue     float64
	COGS        float64
	GrossProfit float64
	EBITDA      float64
	NetIncome   float64
	Balance     BalanceItems
}

// PeriodMetrics is the derived ratio set for one period. Margins and
// growth are fractions (0.35 = 35%); DSO/DPO are days.
type PeriodMetrics struct {
	TotalCurrentAssets      float64 `json:"total_current_assets"`
	TotalAssets             float64 `json:"total_assets"`
	TotalCurrentLiabilities float64 `json:"total_current_liabilities"`
	NetWorkingCapital       float64 `json:"net_working_capital"`

	RevenueGrowth float64 `json:"revenue_growth"`
	GrossMargin   float64 `json:"gross_margin"`
	EBITDAMargin  float64 `json:"ebitda_margin"`
	NetMargin     float64 `json:"net_margin"`

	CurrentRatio float64 `json:"current_ratio"`
	QuickRatio   float64 `json:"quick_ratio"`
	DSO          float64 `json:"dso"`
	DPO          float64 `json:"dpo"`
}

// Compute derives one period's ratios. prev supplies the prior
// chronological period for growth and balance averaging; pass nil for
// the earliest period, in which case the period's own balances stand in
// for the averages and revenue growth reports 0.
//
// NWC = (AR + Inventory + OtherCA) - (AP + OtherCL)
// DSO = avg(AR, prevAR) / Revenue * 365
// DPO = avg(AP, prevAP) / COGS * 365
func Compute(cur Inputs, prev *Inputs) PeriodMetrics {
	b := cur.Balance

	tca := b.Cash + b.AccountsReceivable + b.Inventory + b.OtherCurrentAssets
	tcl := b.AccountsPayable + b.ShortTermDebt + b.OtherCurrentLiabilities
	nwc := (b.AccountsReceivable + b.Inventory + b.OtherCurrentAssets) -
		(b.AccountsPayable + b.OtherCurrentLiabilities)

	prevAR := b.AccountsReceivable
	prevAP := b.AccountsPayable
	growth := 0.0
	if prev != nil {
		prevAR = prev.Balance.AccountsReceivable
		prevAP = prev.Balance.AccountsPayable
		growth = safeDiv(cur.Revenue-prev.Revenue, prev.Revenue)
	}

	return PeriodMetrics{
		TotalCurrentAssets:      tca,
		TotalAssets:             tca + b.LongTermAssets,
		TotalCurrentLiabilities: tcl,
		NetWorkingCapital:       nwc,
		RevenueGrowth:           growth,
		GrossMargin:             safeDiv(cur.GrossProfit, cur.Revenue),
		EBITDAMargin:            safeDiv(cur.EBITDA, cur.Revenue),
		NetMargin:               safeDiv(cur.NetIncome, cur.Revenue),
		CurrentRatio:            safeDiv(tca, tcl),
		QuickRatio:              safeDiv(b.Cash+b.AccountsReceivable, tcl),
		DSO:                     safeDiv((b.AccountsReceivable+prevAR)/2, cur.Revenue) * 365,
		DPO:                     safeDiv((b.AccountsPayable+prevAP)/2, cur.COGS) * 365,
	}
}

// NWCPeg is the arithmetic mean of net working capital across the
// displayed periods, including any synthetic annualized YTD period.
// An empty slice yields 0.
func NWCPeg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
