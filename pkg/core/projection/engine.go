package projection

import (
	"fmt"
	"math"
)

// Engine rolls a starting annual revenue forward through the pro forma:
// monthly compounding in year 1, single annual steps in years 2 and 3.
type Engine struct{}

// NewEngine creates a projection engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Project produces all three years. Blank assumptions arrive as zeros
// from parsing, so every year is always produced.
func (e *Engine) Project(a Assumptions) *Projection {
	p := &Projection{}

	// -------------------------------------------------------------------------
	// Year 1: month-by-month compounding
	// -------------------------------------------------------------------------
	// Month 1 is the starting annual revenue spread evenly; growth
	// kicks in from month 2.
	monthlyRevenue := a.StartingRevenue / 12
	monthlyDebtService := a.AnnualDebtService / 12
	monthlyCapex := a.AnnualCapex / 12

	p.Year1.Label = "Year 1"
	for i := 0; i < 12; i++ {
		if i > 0 {
			monthlyRevenue *= 1 + a.Year1MonthlyGrowth
		}

		opEx := monthlyRevenue * a.OpExRate
		if a.FixedOpEx {
			opEx = a.FixedAnnualOpEx / 12
		}

		row := buildRow(fmt.Sprintf("M%d", i+1), monthlyRevenue, a.COGSRate, opEx, monthlyDebtService, a.TaxRate, monthlyCapex)
		p.Monthly[i] = row
		accumulate(&p.Year1, row)
	}

	// -------------------------------------------------------------------------
	// Years 2 and 3: annual steps off the prior year's totals
	// -------------------------------------------------------------------------
	p.Year2 = e.projectAnnual("Year 2", p.Year1, a.Year2Growth, a)
	p.Year3 = e.projectAnnual("Year 3", p.Year2, a.Year3Growth, a)

	return p
}

func (e *Engine) projectAnnual(label string, prior Row, growth float64, a Assumptions) Row {
	revenue := prior.Revenue * (1 + growth)

	opEx := revenue * a.OpExRate
	if a.FixedOpEx {
		opEx = prior.OpEx * (1 + a.OpExAnnualGrowth)
	}

	// Annual years use the full debt service and capex, not a /12 slice.
	return buildRow(label, revenue, a.COGSRate, opEx, a.AnnualDebtService, a.TaxRate, a.AnnualCapex)
}

// buildRow computes the shared column chain for one span.
//
// EBT   = EBITDA - debt service
// Taxes = max(0, EBT) * taxRate (losses carry no tax benefit here)
// FCF   = EBITDA - taxes - capex
func buildRow(label string, revenue, cogsRate, opEx, debtService, taxRate, capex float64) Row {
	cogs := revenue * cogsRate
	grossProfit := revenue - cogs
	ebitda := grossProfit - opEx
	ebt := ebitda - debtService
	taxes := math.Max(0, ebt) * taxRate

	return Row{
		Label:        label,
		Revenue:      revenue,
		COGS:         cogs,
		GrossProfit:  grossProfit,
		OpEx:         opEx,
		EBITDA:       ebitda,
		EBT:          ebt,
		Taxes:        taxes,
		NetIncome:    ebt - taxes,
		FreeCashFlow: ebitda - taxes - capex,
	}
}

// accumulate sums a monthly row into the year-1 totals, every metric.
func accumulate(total *Row, row Row) {
	total.Revenue += row.Revenue
	total.COGS += row.COGS
	total.GrossProfit += row.GrossProfit
	total.OpEx += row.OpEx
	total.EBITDA += row.EBITDA
	total.EBT += row.EBT
	total.Taxes += row.Taxes
	total.NetIncome += row.NetIncome
	total.FreeCashFlow += row.FreeCashFlow
}
