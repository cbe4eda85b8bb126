package ingest

import (
	"strconv"

	"dealdesk/pkg/models"
)

// ScanRecord is one year of income-statement figures extracted by the
// document-scan agent. The field casing matches the JSON the agent is
// prompted to return.
type ScanRecord struct {
	Year         int     `json:"year"`
	Revenue      float64 `json:"Revenue"`
	COGS         float64 `json:"COGS"`
	OpEx         float64 `json:"OpEx"`
	Depreciation float64 `json:"Depreciation"`
	Amortization float64 `json:"Amortization"`
	Interest     float64 `json:"Interest"`
	Taxes        float64 `json:"Taxes"`
}

// MergeScan folds scanned records into existing periods. A record whose
// year matches a period name exactly updates that period's income lines
// in place; anything else appends a new period. Balance-sheet data on
// matched periods is left alone.
func MergeScan(periods []*models.FinancialPeriod, records []ScanRecord) []*models.FinancialPeriod {
	for _, rec := range records {
		name := strconv.Itoa(rec.Year)

		var target *models.FinancialPeriod
		for _, p := range periods {
			if p.Name == name {
				target = p
				break
			}
		}
		if target == nil {
			target = models.NewFinancialPeriod(name)
			periods = append(periods, target)
		}
		applyScan(target, rec)
	}
	return periods
}

func applyScan(p *models.FinancialPeriod, rec ScanRecord) {
	p.Revenue = models.AmountOf(rec.Revenue)
	p.COGS = models.AmountOf(rec.COGS)
	p.OperatingExpenses = models.AmountOf(rec.OpEx)
	p.Depreciation = models.AmountOf(rec.Depreciation)
	p.Amortization = models.AmountOf(rec.Amortization)
	p.InterestExpense = models.AmountOf(rec.Interest)
	p.Taxes = models.AmountOf(rec.Taxes)
}
