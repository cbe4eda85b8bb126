package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"dealdesk/pkg/core/analysis"
	"dealdesk/pkg/core/money"
)

// Format selects how grid cells are rendered.
type Format string

const (
	// FormatRaw renders plain numbers with two decimals.
	FormatRaw Format = "raw"
	// FormatCurrency renders dollar strings, and whole days for the
	// day-count metrics.
	FormatCurrency Format = "currency"
)

// MetricRows lists the exported metrics in display order.
var MetricRows = []string{
	"Revenue",
	"Gross Profit",
	"EBITDA",
	"Normalized EBITDA",
	"Normalized SDE",
	"Net Income",
	"Net Working Capital",
	"DSO (Days)",
	"DPO (Days)",
}

// Grid is a spreadsheet-shaped view of an analysis: one row per
// metric, one column per period.
type Grid struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// BuildGrid renders an analysis into rows and columns ready for a
// spreadsheet paste or a CSV download.
func BuildGrid(a *analysis.CompanyAnalysis, format Format) *Grid {
	grid := &Grid{Headers: []string{"Metric"}}
	if a == nil {
		return grid
	}
	for _, p := range a.Periods {
		grid.Headers = append(grid.Headers, p.PeriodName)
	}
	for _, name := range MetricRows {
		row := []string{name}
		for _, p := range a.Periods {
			row = append(row, renderCell(name, metricValue(name, p), format))
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// metricValue extracts the named metric from one analyzed period.
func metricValue(name string, p *analysis.PeriodAnalysis) float64 {
	switch name {
	case "Revenue":
		return p.Income.Revenue
	case "Gross Profit":
		return p.Income.GrossProfit
	case "EBITDA":
		return p.Income.EBITDA
	case "Normalized EBITDA":
		return p.Income.NormalizedEBITDA
	case "Normalized SDE":
		return p.Income.NormalizedSDE
	case "Net Income":
		return p.Income.NetIncome
	case "Net Working Capital":
		return p.Metrics.NetWorkingCapital
	case "DSO (Days)":
		return p.Metrics.DSO
	case "DPO (Days)":
		return p.Metrics.DPO
	}
	return 0
}

// isDayCount reports whether the metric renders as whole days rather
// than dollars.
func isDayCount(name string) bool {
	return name == "DSO (Days)" || name == "DPO (Days)"
}

func renderCell(name string, v float64, format Format) string {
	if format == FormatCurrency {
		if isDayCount(name) {
			return money.FormatDayCount(v)
		}
		return money.FormatCurrency(v)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteCSV streams the grid as CSV.
func WriteCSV(w io.Writer, g *Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.Headers); err != nil {
		return err
	}
	for _, row := range g.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
