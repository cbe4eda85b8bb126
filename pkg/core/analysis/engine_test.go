package analysis

import (
	"math"
	"testing"
	"time"

	"dealdesk/pkg/core/ratio"
	"dealdesk/pkg/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

// buildPeriod fills a period with income and balance lines in one call.
func buildPeriod(name string, income map[string]float64, balance map[string]float64) *models.FinancialPeriod {
	p := models.NewFinancialPeriod(name)
	for key, v := range income {
		p.SetField(key, models.AmountOf(v))
	}
	for key, v := range balance {
		p.SetField(key, models.AmountOf(v))
	}
	return p
}

func TestAnalyzeTwoPeriods(t *testing.T) {
	wb := models.NewCompanyWorkbook("Acme Services")
	wb.Periods = nil

	// 2022: Revenue 1,000,000; COGS 600,000; OpEx 250,000 -> EBITDA 150,000
	// Net income = 1,000,000 - 600,000 - 250,000 - 20,000 - 5,000 - 10,000 - 15,000 = 100,000
	wb.Periods = append(wb.Periods, buildPeriod("2022",
		map[string]float64{
			"revenue": 1000000, "cogs": 600000, "operating_expenses": 250000,
			"depreciation": 20000, "amortization": 5000, "interest_expense": 10000, "taxes": 15000,
		},
		map[string]float64{
			"cash": 50000, "accounts_receivable": 80000, "inventory": 40000, "other_current_assets": 10000,
			"long_term_assets": 200000,
			"accounts_payable": 60000, "short_term_debt": 20000, "other_current_liabilities": 10000,
			"long_term_debt": 100000, "shareholder_equity": 190000,
		}))

	// 2023: Revenue 1,200,000; COGS 700,000; OpEx 280,000 -> EBITDA 220,000
	wb.Periods = append(wb.Periods, buildPeriod("2023",
		map[string]float64{
			"revenue": 1200000, "cogs": 700000, "operating_expenses": 280000,
			"depreciation": 25000, "amortization": 5000, "interest_expense": 12000, "taxes": 30000,
		},
		map[string]float64{
			"cash": 70000, "accounts_receivable": 100000, "inventory": 50000, "other_current_assets": 10000,
			"long_term_assets": 220000,
			"accounts_payable": 70000, "short_term_debt": 20000, "other_current_liabilities": 10000,
			"long_term_debt": 90000, "shareholder_equity": 260000,
		}))

	wb.AddBacks = append(wb.AddBacks, models.NewAddBack("Legal settlement", models.AmountOf(30000), models.AddBackNonRecurring))
	wb.OwnerComp = models.AmountOf(120000)

	engine := NewEngine()
	result, err := engine.Analyze(wb, Options{Benchmarks: ratio.DefaultBenchmarks()})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Company != "Acme Services" {
		t.Errorf("Company = %q, want Acme Services", result.Company)
	}
	if len(result.Periods) != 2 {
		t.Fatalf("got %d periods, want 2", len(result.Periods))
	}

	first, second := result.Periods[0], result.Periods[1]
	if first.PeriodName != "2022" || second.PeriodName != "2023" {
		t.Fatalf("period order = %q, %q", first.PeriodName, second.PeriodName)
	}

	// Waterfall for 2022: EBITDA 150,000; +30,000 add-backs = 180,000
	// normalized EBITDA; +120,000 owner comp = 300,000 SDE.
	if !almostEqual(first.Income.EBITDA, 150000) {
		t.Errorf("2022 EBITDA = %.2f, want 150000", first.Income.EBITDA)
	}
	if !almostEqual(first.Income.NormalizedEBITDA, 180000) {
		t.Errorf("2022 normalized EBITDA = %.2f, want 180000", first.Income.NormalizedEBITDA)
	}
	if !almostEqual(first.Income.NormalizedSDE, 300000) {
		t.Errorf("2022 SDE = %.2f, want 300000", first.Income.NormalizedSDE)
	}
	if !almostEqual(first.Income.NetIncome, 100000) {
		t.Errorf("2022 net income = %.2f, want 100000", first.Income.NetIncome)
	}

	// First period has no prior: growth 0, DSO from its own balances
	// (80,000 / 1,000,000) * 365 = 29.2
	if first.Metrics.RevenueGrowth != 0 {
		t.Errorf("2022 revenue growth = %.4f, want 0", first.Metrics.RevenueGrowth)
	}
	if !almostEqual(first.Metrics.DSO, 29.2) {
		t.Errorf("2022 DSO = %.4f, want 29.2", first.Metrics.DSO)
	}

	// 2023 growth: (1,200,000 - 1,000,000) / 1,000,000 = 0.20
	if !almostEqual(second.Metrics.RevenueGrowth, 0.20) {
		t.Errorf("2023 revenue growth = %.4f, want 0.20", second.Metrics.RevenueGrowth)
	}
	// DSO: avg AR (80,000+100,000)/2 = 90,000; 90,000/1,200,000*365 = 27.375
	if !almostEqual(second.Metrics.DSO, 27.375) {
		t.Errorf("2023 DSO = %.4f, want 27.375", second.Metrics.DSO)
	}
	// DPO: avg AP 65,000 / COGS 700,000 * 365 = 33.8929
	if !almostEqual(second.Metrics.DPO, 33.892857142857) {
		t.Errorf("2023 DPO = %.4f, want 33.8929", second.Metrics.DPO)
	}
	// NWC: 2022 = 180,000-90,000 = 90,000; 2023 = 230,000-100,000 = 130,000
	if !almostEqual(second.Metrics.NetWorkingCapital, 130000) {
		t.Errorf("2023 NWC = %.2f, want 130000", second.Metrics.NetWorkingCapital)
	}
	// Peg = (90,000 + 130,000) / 2 = 110,000
	if !almostEqual(result.NWCPeg, 110000) {
		t.Errorf("NWC peg = %.2f, want 110000", result.NWCPeg)
	}

	// Benchmarks: 2023 clears everything except DPO (33.89 > 30 target
	// where lower is better).
	if second.Benchmarks == nil {
		t.Fatal("benchmarks missing on second period")
	}
	if !second.Benchmarks["gross_margin"] {
		t.Error("gross margin 41.7% should be favorable against 40%")
	}
	if second.Benchmarks["dpo"] {
		t.Error("DPO 33.89 should be unfavorable against 30")
	}
}

func TestAnalyzeOrdersPeriodsChronologically(t *testing.T) {
	wb := models.NewCompanyWorkbook("Order Co")
	wb.Periods = nil

	ytd := models.NewFinancialPeriod("YTD Actuals")
	ytd.IsYTD = true

	wb.Periods = append(wb.Periods,
		buildPeriod("FY 2023", map[string]float64{"revenue": 3}, nil),
		ytd,
		buildPeriod("2021", map[string]float64{"revenue": 1}, nil),
		buildPeriod("2022", map[string]float64{"revenue": 2}, nil),
	)

	engine := NewEngine()
	result, err := engine.Analyze(wb, Options{Now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	want := []string{"2021", "2022", "FY 2023", "YTD Actuals"}
	for i, name := range want {
		if result.Periods[i].PeriodName != name {
			t.Errorf("period[%d] = %q, want %q", i, result.Periods[i].PeriodName, name)
		}
	}
	// YTD sorts at the current calendar year.
	if result.Periods[3].SortYear != 2024 {
		t.Errorf("YTD sort year = %d, want 2024", result.Periods[3].SortYear)
	}
}

func TestAnalyzeAnnualizesYTD(t *testing.T) {
	wb := models.NewCompanyWorkbook("Mid Year LLC")
	wb.Periods = nil

	ytd := buildPeriod("YTD Actuals",
		map[string]float64{"revenue": 600000, "cogs": 300000, "operating_expenses": 150000, "depreciation": 10000},
		map[string]float64{"accounts_receivable": 50000, "accounts_payable": 20000})
	ytd.IsYTD = true
	wb.Periods = append(wb.Periods, ytd)

	engine := NewEngine()
	result, err := engine.Analyze(wb, Options{
		AnnualizeYTD:  true,
		MonthsElapsed: 6,
		Now:           time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	p := result.Periods[0]
	if p.PeriodName != "YTD Actuals (Annualized)" {
		t.Errorf("name = %q, want YTD Actuals (Annualized)", p.PeriodName)
	}
	if !p.IsSynthetic {
		t.Error("annualized period should be marked synthetic")
	}
	// Trading lines scale by 12/6 = 2; depreciation does not.
	if !almostEqual(p.Income.Revenue, 1200000) {
		t.Errorf("annualized revenue = %.2f, want 1200000", p.Income.Revenue)
	}
	if !almostEqual(p.Income.EBITDA, 300000) {
		t.Errorf("annualized EBITDA = %.2f, want 300000", p.Income.EBITDA)
	}
	// Balance-sheet lines are untouched: NWC = 50,000 - 20,000.
	if !almostEqual(p.Metrics.NetWorkingCapital, 30000) {
		t.Errorf("NWC = %.2f, want 30000", p.Metrics.NetWorkingCapital)
	}

	// Same workbook without annualization keeps the raw period.
	raw, err := engine.Analyze(wb, Options{Now: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if raw.Periods[0].IsSynthetic || raw.Periods[0].PeriodName != "YTD Actuals" {
		t.Errorf("raw run altered period: %q", raw.Periods[0].PeriodName)
	}
	if !almostEqual(raw.Periods[0].Income.Revenue, 600000) {
		t.Errorf("raw revenue = %.2f, want 600000", raw.Periods[0].Income.Revenue)
	}
}

func TestAnalyzeNilAndEmpty(t *testing.T) {
	engine := NewEngine()

	if _, err := engine.Analyze(nil, Options{}); err == nil {
		t.Error("expected error for nil workbook")
	}

	wb := models.NewCompanyWorkbook("Empty Co")
	wb.Periods = nil
	result, err := engine.Analyze(wb, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(result.Periods) != 0 {
		t.Errorf("got %d periods, want 0", len(result.Periods))
	}
	if result.NWCPeg != 0 {
		t.Errorf("NWC peg = %.2f, want 0", result.NWCPeg)
	}
}
