package ingest

import (
	"strings"
	"testing"

	"dealdesk/pkg/models"
)

func TestCanonicalField(t *testing.T) {
	cases := []struct {
		label string
		key   string
		ok    bool
	}{
		{"Revenue", "revenue", true},
		{"  SALES ", "revenue", true},
		{"Turnover", "revenue", true},
		{"Cost of Goods Sold", "cogs", true},
		{"COGS", "cogs", true},
		{"Shareholders' Equity", "shareholder_equity", true},
		{"Goodwill", "", false},
	}
	for _, c := range cases {
		key, ok := CanonicalField(c.label)
		if key != c.key || ok != c.ok {
			t.Errorf("CanonicalField(%q) = (%q, %v), want (%q, %v)", c.label, key, ok, c.key, c.ok)
		}
	}
}

func TestImportCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Line Item,2022,2023",
		"Revenue,\"1,000,000\",\"1,250,000\"",
		"Cost of Sales,400000,480000",
		"Operating Expenses,350000,390000",
		"Goodwill,99999,99999", // no alias, skipped
		"Accounts Receivable,60000,80000",
	}, "\n")

	periods, err := ImportCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("period count = %d, want 2", len(periods))
	}

	p22, p23 := periods[0], periods[1]
	if p22.Name != "2022" || p23.Name != "2023" {
		t.Errorf("period names = %q, %q", p22.Name, p23.Name)
	}
	if p22.Revenue.Value != 1000000 || p23.Revenue.Value != 1250000 {
		t.Errorf("revenue = %f, %f", p22.Revenue.Value, p23.Revenue.Value)
	}
	if p23.COGS.Value != 480000 {
		t.Errorf("2023 COGS = %f, want 480000", p23.COGS.Value)
	}
	if p22.AccountsReceivable.Value != 60000 {
		t.Errorf("2022 AR = %f, want 60000", p22.AccountsReceivable.Value)
	}
}

func TestImportCSVRejectsHeaderlessData(t *testing.T) {
	if _, err := ImportCSV(strings.NewReader("OnlyOneColumn\n")); err == nil {
		t.Error("a header without period columns should fail")
	}
}

func TestImportHTML(t *testing.T) {
	html := `<html><body><table>
		<tr><th>Line Item</th><th>2022</th><th>2023</th></tr>
		<tr><td>Revenue</td><td>$1,000,000</td><td>$1,250,000</td></tr>
		<tr><td>COGS</td><td>400,000</td><td>480,000</td></tr>
		<tr><td>Unknown Metric</td><td>1</td><td>2</td></tr>
	</table></body></html>`

	periods, err := ImportHTML(html)
	if err != nil {
		t.Fatalf("ImportHTML failed: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("period count = %d, want 2", len(periods))
	}
	if periods[1].Name != "2023" {
		t.Errorf("second period = %q, want 2023", periods[1].Name)
	}
	if periods[0].Revenue.Value != 1000000 {
		t.Errorf("2022 revenue = %f, want 1000000", periods[0].Revenue.Value)
	}
	if periods[1].COGS.Value != 480000 {
		t.Errorf("2023 COGS = %f, want 480000", periods[1].COGS.Value)
	}
}

func TestImportHTMLWithoutTable(t *testing.T) {
	if _, err := ImportHTML("<p>no table here</p>"); err == nil {
		t.Error("HTML without a table should fail")
	}
}

func TestMergeScanUpdatesMatchingPeriod(t *testing.T) {
	existing := models.NewFinancialPeriod("2023")
	existing.Cash = models.AmountOf(55000) // balance data must survive
	periods := []*models.FinancialPeriod{existing}

	merged := MergeScan(periods, []ScanRecord{{
		Year:    2023,
		Revenue: 1250000,
		COGS:    480000,
		OpEx:    390000,
		Taxes:   45000,
	}})

	if len(merged) != 1 {
		t.Fatalf("period count = %d, want 1 (update in place)", len(merged))
	}
	if merged[0].ID != existing.ID {
		t.Error("matching period should be updated, not replaced")
	}
	if merged[0].Revenue.Value != 1250000 {
		t.Errorf("revenue = %f, want 1250000", merged[0].Revenue.Value)
	}
	if merged[0].Cash.Value != 55000 {
		t.Errorf("cash = %f, balance-sheet data must be preserved", merged[0].Cash.Value)
	}
}

func TestMergeScanAppendsNewPeriod(t *testing.T) {
	periods := []*models.FinancialPeriod{models.NewFinancialPeriod("2022")}

	merged := MergeScan(periods, []ScanRecord{{Year: 2023, Revenue: 900000}})
	if len(merged) != 2 {
		t.Fatalf("period count = %d, want 2 (appended)", len(merged))
	}
	if merged[1].Name != "2023" {
		t.Errorf("appended period name = %q, want 2023", merged[1].Name)
	}
	if merged[1].Revenue.Value != 900000 {
		t.Errorf("appended revenue = %f, want 900000", merged[1].Revenue.Value)
	}

	// "YTD Actuals" is not a year name, so a scan year never matches it.
	ytd := models.NewFinancialPeriod("YTD Actuals")
	merged = MergeScan([]*models.FinancialPeriod{ytd}, []ScanRecord{{Year: 2024, Revenue: 1}})
	if len(merged) != 2 {
		t.Errorf("period count = %d, want 2", len(merged))
	}
}
