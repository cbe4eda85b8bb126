package ratio

import (
	"math"
	"testing"
)

func almostEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.0001 {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

func TestComputeWithPriorPeriod(t *testing.T) {
	prev := Inputs{
		Revenue: 800000,
		COGS:    320000,
		Balance: BalanceItems{AccountsReceivable: 60000, AccountsPayable: 30000},
	}
	cur := Inputs{
		Revenue:     1000000,
		COGS:        400000,
		GrossProfit: 600000,
		EBITDA:      250000,
		NetIncome:   170000,
		Balance: BalanceItems{
			Cash:                    50000,
			AccountsReceivable:      80000,
			Inventory:               40000,
			OtherCurrentAssets:      10000,
			LongTermAssets:          220000,
			AccountsPayable:         50000,
			ShortTermDebt:           20000,
			OtherCurrentLiabilities: 15000,
		},
	}

	m := Compute(cur, &prev)

	// 50k + 80k + 40k + 10k
	almostEqual(t, "TotalCurrentAssets", m.TotalCurrentAssets, 180000)
	almostEqual(t, "TotalAssets", m.TotalAssets, 400000)
	// 50k + 20k + 15k
	almostEqual(t, "TotalCurrentLiabilities", m.TotalCurrentLiabilities, 85000)
	// (80k + 40k + 10k) - (50k + 15k)
	almostEqual(t, "NetWorkingCapital", m.NetWorkingCapital, 65000)
	// (1,000k - 800k) / 800k
	almostEqual(t, "RevenueGrowth", m.RevenueGrowth, 0.25)
	almostEqual(t, "GrossMargin", m.GrossMargin, 0.6)
	almostEqual(t, "EBITDAMargin", m.EBITDAMargin, 0.25)
	almostEqual(t, "NetMargin", m.NetMargin, 0.17)
	almostEqual(t, "CurrentRatio", m.CurrentRatio, 180000.0/85000)
	almostEqual(t, "QuickRatio", m.QuickRatio, 130000.0/85000)
	// avg(80k, 60k) / 1,000k * 365 = 25.55
	almostEqual(t, "DSO", m.DSO, 70000.0/1000000*365)
	// avg(50k, 30k) / 400k * 365 = 36.5
	almostEqual(t, "DPO", m.DPO, 40000.0/400000*365)
}

func TestComputeWithoutPriorUsesOwnBalances(t *testing.T) {
	cur := Inputs{
		Revenue: 500000,
		COGS:    200000,
		Balance: BalanceItems{AccountsReceivable: 41000, AccountsPayable: 22000},
	}
	m := Compute(cur, nil)

	almostEqual(t, "RevenueGrowth", m.RevenueGrowth, 0)
	// avg(AR, AR) == AR
	almostEqual(t, "DSO", m.DSO, 41000.0/500000*365)
	almostEqual(t, "DPO", m.DPO, 22000.0/200000*365)
}

func TestZeroDenominatorsResolveToZero(t *testing.T) {
	m := Compute(Inputs{}, nil)
	almostEqual(t, "GrossMargin", m.GrossMargin, 0)
	almostEqual(t, "CurrentRatio", m.CurrentRatio, 0)
	almostEqual(t, "QuickRatio", m.QuickRatio, 0)
	almostEqual(t, "DSO", m.DSO, 0)
	almostEqual(t, "DPO", m.DPO, 0)

	prev := Inputs{Revenue: 0}
	m = Compute(Inputs{Revenue: 100}, &prev)
	almostEqual(t, "RevenueGrowth with zero prior", m.RevenueGrowth, 0)
}

func TestBenchmarkDirection(t *testing.T) {
	margin := Benchmark{Value: 0.40}
	if !margin.Favorable(0.45) {
		t.Error("45% gross margin should beat a 40% benchmark")
	}
	if !margin.Favorable(0.40) {
		t.Error("meeting the benchmark exactly should be favorable")
	}
	if margin.Favorable(0.35) {
		t.Error("35% gross margin should miss a 40% benchmark")
	}

	// DSO flips: fewer days outstanding is better.
	dso := Benchmark{Value: 45, LowerIsBetter: true}
	if !dso.Favorable(30) {
		t.Error("30 days DSO should beat a 45-day benchmark")
	}
	if dso.Favorable(60) {
		t.Error("60 days DSO should miss a 45-day benchmark")
	}
}

func TestCompare(t *testing.T) {
	bm := Benchmarks{
		"gross_margin": {Value: 0.40},
		"dso":          {Value: 45, LowerIsBetter: true},
	}
	got := bm.Compare(PeriodMetrics{GrossMargin: 0.5, DSO: 60})
	if !got["gross_margin"] {
		t.Error("gross_margin should be favorable")
	}
	if got["dso"] {
		t.Error("dso should be unfavorable at 60 days vs 45")
	}
}

func TestNWCPeg(t *testing.T) {
	almostEqual(t, "peg", NWCPeg([]float64{60000, 70000, 80000}), 70000)
	almostEqual(t, "empty peg", NWCPeg(nil), 0)
}
