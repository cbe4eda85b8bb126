package ratio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Benchmark is a target value for one metric. LowerIsBetter flips the
// comparison for efficiency metrics (DSO, DPO) where fewer days
// outstanding is the favorable direction.
type Benchmark struct {
	Value         float64 `yaml:"value" json:"value"`
	LowerIsBetter bool    `yaml:"lower_is_better" json:"lower_is_better"`
}

// Favorable reports whether actual meets the benchmark. Meeting the
// target exactly counts as favorable in both directions.
func (b Benchmark) Favorable(actual float64) bool {
	if b.LowerIsBetter {
		return actual <= b.Value
	}
	return actual >= b.Value
}

// Benchmarks maps metric keys (gross_margin, ebitda_margin, net_margin,
// current_ratio, quick_ratio, dso, dpo) to their targets.
type Benchmarks map[string]Benchmark

// DefaultBenchmarks returns the built-in targets used when no
// benchmarks file is configured. Margins are fractions.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		"gross_margin":  {Value: 0.40},
		"ebitda_margin": {Value: 0.15},
		"net_margin":    {Value: 0.10},
		"current_ratio": {Value: 1.5},
		"quick_ratio":   {Value: 1.0},
		"dso":           {Value: 45, LowerIsBetter: true},
		"dpo":           {Value: 30, LowerIsBetter: true},
	}
}

// LoadBenchmarks reads metric targets from a YAML file.
func LoadBenchmarks(path string) (Benchmarks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmarks file: %w", err)
	}
	var b Benchmarks
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse benchmarks file: %w", err)
	}
	return b, nil
}

// Compare evaluates a period's metrics against each configured
// benchmark and reports which direction each one landed.
func (bm Benchmarks) Compare(m PeriodMetrics) map[string]bool {
	actuals := map[string]float64{
		"gross_margin":  m.GrossMargin,
		"ebitda_margin": m.EBITDAMargin,
		"net_margin":    m.NetMargin,
		"current_ratio": m.CurrentRatio,
		"quick_ratio":   m.QuickRatio,
		"dso":           m.DSO,
		"dpo":           m.DPO,
	}
	out := make(map[string]bool, len(bm))
	for key, bench := range bm {
		actual, ok := actuals[key]
		if !ok {
			continue
		}
		out[key] = bench.Favorable(actual)
	}
	return out
}
