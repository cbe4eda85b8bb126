package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"dealdesk/pkg/core/analysis"
	"dealdesk/pkg/core/buybox"
	"dealdesk/pkg/core/dealstructure"
	"dealdesk/pkg/core/export"
	"dealdesk/pkg/core/money"
	"dealdesk/pkg/core/projection"
	"dealdesk/pkg/core/ratio"
	"dealdesk/pkg/models"
)

func main() {
	workbookPath := flag.String("workbook", "", "path to a workbook JSON file")
	benchmarksPath := flag.String("benchmarks", "config/benchmarks.yaml", "path to the benchmark YAML")
	annualize := flag.Bool("annualize", false, "annualize YTD periods")
	months := flag.Float64("months", 0, "months elapsed in the YTD period (overrides the workbook)")
	csvPath := flag.String("csv", "", "write the metric grid to this CSV file")
	csvFormat := flag.String("format", "raw", "CSV cell format: raw or currency")
	flag.Parse()

	if *workbookPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*workbookPath)
	if err != nil {
		log.Fatalf("Failed to read workbook: %v", err)
	}
	var wb models.CompanyWorkbook
	if err := json.Unmarshal(data, &wb); err != nil {
		log.Fatalf("Failed to parse workbook: %v", err)
	}

	benchmarks, err := ratio.LoadBenchmarks(*benchmarksPath)
	if err != nil {
		log.Warnf("Benchmarks not loaded (%v), using built-in defaults", err)
		benchmarks = ratio.DefaultBenchmarks()
	}

	ytdMonths := *months
	if ytdMonths <= 0 {
		ytdMonths = wb.YTDMonths.Value
	}

	engine := analysis.NewEngine()
	result, err := engine.Analyze(&wb, analysis.Options{
		AnnualizeYTD:  *annualize,
		MonthsElapsed: ytdMonths,
		Benchmarks:    benchmarks,
	})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Println("\n################################################################################")
	fmt.Println("                        DEALDESK - DEAL ANALYSIS REPORT")
	fmt.Printf("                        Target: %s\n", wb.Company)
	fmt.Println("################################################################################")

	printWaterfall(result)
	printRatios(result)
	printDealStructure(&wb)
	printProjection(&wb)
	printBuyBox(&wb)

	if *csvPath != "" {
		writeCSV(*csvPath, result, *csvFormat)
	}

	fmt.Println("\n[Done] Report complete.")
}

// printWaterfall renders the earnings waterfall, one column per period.
func printWaterfall(a *analysis.CompanyAnalysis) {
	fmt.Println("\n[1] SDE / EBITDA WATERFALL")
	printHeader(a)

	rows := []struct {
		label string
		pick  func(p *analysis.PeriodAnalysis) float64
	}{
		{"Revenue", func(p *analysis.PeriodAnalysis) float64 { return p.Income.Revenue }},
		{"COGS", func(p *analysis.PeriodAnalysis) float64 { return p.Income.COGS }},
		{"Gross Profit", func(p *analysis.PeriodAnalysis) float64 { return p.Income.GrossProfit }},
		{"Operating Expenses", func(p *analysis.PeriodAnalysis) float64 { return p.Income.OperatingExpenses }},
		{"EBITDA", func(p *analysis.PeriodAnalysis) float64 { return p.Income.EBITDA }},
		{"Total Add-Backs", func(p *analysis.PeriodAnalysis) float64 { return p.Income.TotalAddBacks }},
		{"Normalized EBITDA", func(p *analysis.PeriodAnalysis) float64 { return p.Income.NormalizedEBITDA }},
		{"Normalized SDE", func(p *analysis.PeriodAnalysis) float64 { return p.Income.NormalizedSDE }},
		{"Net Income", func(p *analysis.PeriodAnalysis) float64 { return p.Income.NetIncome }},
	}
	for _, row := range rows {
		fmt.Printf("%-25s", row.label)
		for _, p := range a.Periods {
			fmt.Printf(" | %15s", money.FormatCurrency(row.pick(p)))
		}
		fmt.Println()
	}
}

// printRatios renders margins, liquidity and the working-capital view.
func printRatios(a *analysis.CompanyAnalysis) {
	fmt.Println("\n[2] RATIO & WORKING CAPITAL")
	printHeader(a)

	rows := []struct {
		label  string
		render func(p *analysis.PeriodAnalysis) string
	}{
		{"Revenue Growth", func(p *analysis.PeriodAnalysis) string { return money.FormatPercent(p.Metrics.RevenueGrowth) }},
		{"Gross Margin", func(p *analysis.PeriodAnalysis) string { return money.FormatPercent(p.Metrics.GrossMargin) }},
		{"EBITDA Margin", func(p *analysis.PeriodAnalysis) string { return money.FormatPercent(p.Metrics.EBITDAMargin) }},
		{"Net Margin", func(p *analysis.PeriodAnalysis) string { return money.FormatPercent(p.Metrics.NetMargin) }},
		{"Current Ratio", func(p *analysis.PeriodAnalysis) string { return money.FormatRatio(p.Metrics.CurrentRatio) }},
		{"Quick Ratio", func(p *analysis.PeriodAnalysis) string { return money.FormatRatio(p.Metrics.QuickRatio) }},
		{"DSO (Days)", func(p *analysis.PeriodAnalysis) string { return money.FormatDayCount(p.Metrics.DSO) }},
		{"DPO (Days)", func(p *analysis.PeriodAnalysis) string { return money.FormatDayCount(p.Metrics.DPO) }},
		{"Net Working Capital", func(p *analysis.PeriodAnalysis) string { return money.FormatCurrency(p.Metrics.NetWorkingCapital) }},
	}
	for _, row := range rows {
		fmt.Printf("%-25s", row.label)
		for _, p := range a.Periods {
			fmt.Printf(" | %15s", row.render(p))
		}
		fmt.Println()
	}

	fmt.Printf("\nNWC Peg (avg of periods): %s\n", money.FormatCurrency(a.NWCPeg))

	// Flag anything off-benchmark in the latest period.
	if len(a.Periods) > 0 {
		last := a.Periods[len(a.Periods)-1]
		var watch []string
		for key, favorable := range last.Benchmarks {
			if !favorable {
				watch = append(watch, key)
			}
		}
		if len(watch) > 0 {
			fmt.Printf("Benchmark watch list (%s): %s\n", last.PeriodName, strings.Join(watch, ", "))
		}
	}
}

// printDealStructure renders the financing stack and DSCR check, plus the
// stressed column when the workbook requests a stress run.
func printDealStructure(wb *models.CompanyWorkbook) {
	fmt.Println("\n[3] DEAL STRUCTURE")

	in := dealstructure.FromModel(wb.DealInputs)
	if in.SDE == 0 && in.AskingMultiple == 0 {
		fmt.Println("No deal inputs on file.")
		return
	}

	base := in
	base.Stressed = false
	result := dealstructure.Compute(base)

	for field, msg := range result.FieldErrors {
		log.Warnf("Deal input %s: %s", field, msg)
	}

	rows := []struct {
		label string
		value string
	}{
		{"Enterprise Value", money.FormatCurrency(result.EnterpriseValue)},
		{"Total Seller Financing", money.FormatCurrency(result.TotalSellerFinancing)},
		{"Buyer Equity", money.FormatCurrency(result.BuyerEquity)},
		{"Senior Monthly Payment", money.FormatCurrency(result.SeniorMonthlyPayment)},
		{"Total Debt Service", money.FormatCurrency(result.TotalDebtService)},
		{"Cash Available", money.FormatCurrency(result.CashAvailable)},
		{"Net Cash Flow", money.FormatCurrency(result.NetCashFlow)},
		{"Liquidity Reserve", money.FormatCurrency(result.LiquidityReserveTarget)},
		{"Total Cash to Close", money.FormatCurrency(result.TotalCashToClose)},
	}
	for _, row := range rows {
		fmt.Printf("%-25s | %15s\n", row.label, row.value)
	}

	health := "BELOW THRESHOLD"
	if result.DSCRHealthy {
		health = "healthy"
	}
	fmt.Printf("%-25s | %14.2fx (threshold %.2fx, %s)\n", "DSCR", result.DSCR, result.DSCRThreshold, health)

	if in.Stressed {
		stressed := dealstructure.Compute(in)
		health := "BELOW THRESHOLD"
		if stressed.DSCRHealthy {
			health = "healthy"
		}
		fmt.Printf("%-25s | %14.2fx (SDE haircut %.0f%%, %s)\n", "DSCR (stressed)", stressed.DSCR, in.StressPercent, health)
	}
}

// printProjection renders the three-year pro forma summary rows.
func printProjection(wb *models.CompanyWorkbook) {
	fmt.Println("\n[4] 3-YEAR PRO FORMA")

	a := projection.FromModel(wb.Projection)
	if a.StartingRevenue == 0 {
		fmt.Println("No projection assumptions on file.")
		return
	}

	engine := projection.NewEngine()
	proj := engine.Project(a)

	fmt.Printf("%-25s | %15s | %15s | %15s\n", "", "Year 1", "Year 2", "Year 3")
	fmt.Println(strings.Repeat("-", 79))
	rows := []struct {
		label string
		pick  func(r projection.Row) float64
	}{
		{"Revenue", func(r projection.Row) float64 { return r.Revenue }},
		{"EBITDA", func(r projection.Row) float64 { return r.EBITDA }},
		{"Net Income", func(r projection.Row) float64 { return r.NetIncome }},
		{"Free Cash Flow", func(r projection.Row) float64 { return r.FreeCashFlow }},
	}
	for _, row := range rows {
		fmt.Printf("%-25s | %15s | %15s | %15s\n", row.label,
			money.FormatCurrency(row.pick(proj.Year1)),
			money.FormatCurrency(row.pick(proj.Year2)),
			money.FormatCurrency(row.pick(proj.Year3)))
	}
}

// printBuyBox renders the fit score for the stored scorecard, if any.
func printBuyBox(wb *models.CompanyWorkbook) {
	fmt.Println("\n[5] BUY-BOX FIT")

	if strings.TrimSpace(wb.Scorecard) == "" {
		fmt.Println("No scorecard on file.")
		return
	}

	score := buybox.Score(wb.Scorecard, wb.BuyBox)
	total := buybox.TotalPossible(buybox.Weights(wb.BuyBox))
	fmt.Printf("Fit score: %d / 100 (weighted over %d criteria points)\n", score, total)
}

func printHeader(a *analysis.CompanyAnalysis) {
	fmt.Printf("%-25s", "")
	for _, p := range a.Periods {
		fmt.Printf(" | %15s", p.PeriodName)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 25+18*len(a.Periods)))
}

func writeCSV(path string, a *analysis.CompanyAnalysis, format string) {
	f := export.FormatRaw
	if format == "currency" {
		f = export.FormatCurrency
	}
	grid := export.BuildGrid(a, f)

	out, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create CSV file: %v", err)
	}
	defer out.Close()

	if err := export.WriteCSV(out, grid); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	log.Infof("Metric grid written to %s", path)
}
