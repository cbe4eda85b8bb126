package export

import (
	"bytes"
	"strings"
	"testing"

	"dealdesk/pkg/core/analysis"
	"dealdesk/pkg/core/normalize"
	"dealdesk/pkg/core/ratio"
)

func sampleAnalysis() *analysis.CompanyAnalysis {
	return &analysis.CompanyAnalysis{
		Company: "Acme Services",
		Periods: []*analysis.PeriodAnalysis{
			{
				PeriodName: "2022",
				Income: normalize.Result{
					Revenue:          1000000,
					GrossProfit:      400000,
					EBITDA:           150000,
					NormalizedEBITDA: 180000,
					NormalizedSDE:    300000,
					NetIncome:        100000,
				},
				Metrics: ratio.PeriodMetrics{
					NetWorkingCapital: 90000,
					DSO:               29.2,
					DPO:               36.5,
				},
			},
			{
				PeriodName: "2023",
				Income: normalize.Result{
					Revenue:          1200000,
					GrossProfit:      500000,
					EBITDA:           220000,
					NormalizedEBITDA: 250000,
					NormalizedSDE:    370000,
					NetIncome:        148000,
				},
				Metrics: ratio.PeriodMetrics{
					NetWorkingCapital: 130000,
					DSO:               27.375,
					DPO:               33.89,
				},
			},
		},
	}
}

func TestBuildGridRaw(t *testing.T) {
	grid := BuildGrid(sampleAnalysis(), FormatRaw)

	wantHeaders := []string{"Metric", "2022", "2023"}
	for i, h := range wantHeaders {
		if grid.Headers[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, grid.Headers[i], h)
		}
	}
	if len(grid.Rows) != len(MetricRows) {
		t.Fatalf("got %d rows, want %d", len(grid.Rows), len(MetricRows))
	}

	// One row per metric, in display order.
	for i, name := range MetricRows {
		if grid.Rows[i][0] != name {
			t.Errorf("row[%d] metric = %q, want %q", i, grid.Rows[i][0], name)
		}
	}

	// Raw cells carry two decimals.
	if grid.Rows[0][1] != "1000000.00" {
		t.Errorf("raw revenue cell = %q, want 1000000.00", grid.Rows[0][1])
	}
	if grid.Rows[7][2] != "27.38" {
		t.Errorf("raw DSO cell = %q, want 27.38", grid.Rows[7][2])
	}
}

func TestBuildGridCurrency(t *testing.T) {
	grid := BuildGrid(sampleAnalysis(), FormatCurrency)

	if grid.Rows[0][1] != "$1,000,000" {
		t.Errorf("currency revenue cell = %q, want $1,000,000", grid.Rows[0][1])
	}
	if grid.Rows[4][2] != "$370,000" {
		t.Errorf("currency SDE cell = %q, want $370,000", grid.Rows[4][2])
	}
	// Day counts are whole days, not dollars.
	if grid.Rows[7][1] != "29" {
		t.Errorf("DSO cell = %q, want 29", grid.Rows[7][1])
	}
	if grid.Rows[8][1] != "37" {
		t.Errorf("DPO cell = %q, want 37", grid.Rows[8][1])
	}
}

func TestBuildGridNil(t *testing.T) {
	grid := BuildGrid(nil, FormatRaw)
	if len(grid.Headers) != 1 || grid.Headers[0] != "Metric" {
		t.Errorf("nil analysis headers = %v", grid.Headers)
	}
	if len(grid.Rows) != 0 {
		t.Errorf("nil analysis produced %d rows", len(grid.Rows))
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, BuildGrid(sampleAnalysis(), FormatRaw)); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+len(MetricRows) {
		t.Fatalf("got %d CSV lines, want %d", len(lines), 1+len(MetricRows))
	}
	if lines[0] != "Metric,2022,2023" {
		t.Errorf("CSV header = %q", lines[0])
	}
	if lines[1] != "Revenue,1000000.00,1200000.00" {
		t.Errorf("CSV revenue line = %q", lines[1])
	}
	if strings.Contains(lines[1], `"`) {
		t.Errorf("raw cells should not need quoting: %q", lines[1])
	}
}
