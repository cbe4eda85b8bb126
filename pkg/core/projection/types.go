package projection

import "dealdesk/pkg/models"

// Assumptions defines the drivers for the 3-year pro forma. Growth and
// cost rates are fractions (0.02 means 2%); FromModel converts the
// percent-typed fields a workbook carries.
type Assumptions struct {
	StartingRevenue    float64
	Year1MonthlyGrowth float64 // compounding rate, month over month
	Year2Growth        float64 // annual step off year 1 totals
	Year3Growth        float64 // annual step off year 2

	COGSRate float64 // % of Revenue

	// OpEx: percent-of-revenue or a fixed annual amount that grows.
	FixedOpEx        bool
	OpExRate         float64 // % of Revenue
	FixedAnnualOpEx  float64
	OpExAnnualGrowth float64

	AnnualCapex       float64
	AnnualDebtService float64
	TaxRate           float64 // % of positive EBT
}

// FromModel flattens workbook assumptions into engine fractions.
func FromModel(m models.ProjectionAssumptions) Assumptions {
	return Assumptions{
		StartingRevenue:    m.StartingRevenue.Value,
		Year1MonthlyGrowth: m.Year1MonthlyGrowth.Value / 100,
		Year2Growth:        m.Year2Growth.Value / 100,
		Year3Growth:        m.Year3Growth.Value / 100,
		COGSRate:           m.COGSPercent.Value / 100,
		FixedOpEx:          m.OpExMode == models.OpExFixedAmount,
		OpExRate:           m.OpExPercent.Value / 100,
		FixedAnnualOpEx:    m.FixedAnnualOpEx.Value,
		OpExAnnualGrowth:   m.OpExAnnualGrowth.Value / 100,
		AnnualCapex:        m.AnnualCapex.Value,
		AnnualDebtService:  m.AnnualDebtService.Value,
		TaxRate:            m.TaxRatePercent.Value / 100,
	}
}

// Row holds the projected column chain for one span: a single month in
// year 1, or a full year.
type Row struct {
	Label        string  `json:"label"`
	Revenue      float64 `json:"revenue"`
	COGS         float64 `json:"cogs"`
	GrossProfit  float64 `json:"gross_profit"`
	OpEx         float64 `json:"opex"`
	EBITDA       float64 `json:"ebitda"`
	EBT          float64 `json:"ebt"`
	Taxes        float64 `json:"taxes"`
	NetIncome    float64 `json:"net_income"`
	FreeCashFlow float64 `json:"free_cash_flow"`
}

// Projection is the full pro forma: twelve monthly rows for year 1 plus
// annual rows for all three years. Year1 is the sum of the monthly rows.
type Projection struct {
	Monthly [12]Row `json:"monthly"`
	Year1   Row     `json:"year1"`
	Year2   Row     `json:"year2"`
	Year3   Row     `json:"year3"`
}
