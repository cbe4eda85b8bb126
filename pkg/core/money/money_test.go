package money

import (
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"N/A", 0},
		{"-", 0},
		{".", 0},
		{"1250000", 1250000},
		{"1,250,000", 1250000},
		{"$1,250,000.50", 1250000.50},
		{"  $950 ", 950},
		{"-500", -500},
		{"(3,500)", -3500},
		{"12.5%", 12.5},
		{"123.", 123},
		{"1.2.3", 0},
	}
	for _, c := range cases {
		got := ParseAmount(c.in)
		if math.Abs(got-c.want) > 0.0001 {
			t.Errorf("ParseAmount(%q) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestParseAmountRoundTrip(t *testing.T) {
	// parse -> format -> parse must land on the same whole-dollar value.
	inputs := []string{"1,250,000", "$987,654", "(42,000)", "0", "15"}
	for _, in := range inputs {
		first := ParseAmount(in)
		again := ParseAmount(FormatCurrency(first))
		if math.Abs(first-again) > 0.5 {
			t.Errorf("round trip of %q drifted: %f -> %f", in, first, again)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1234567.89, "$1,234,568"},
		{-1234, "-$1,234"},
		{1000, "$1,000"},
		{math.NaN(), "$0"},
		{math.Inf(1), "$0"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Errorf("FormatCurrency(%f) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCurrencyCompact(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1500, "$1.5k"},
		{2300000, "$2.3M"},
		{-1500000, "-$1.5M"},
		{math.NaN(), "$0"},
	}
	for _, c := range cases {
		if got := FormatCurrencyCompact(c.in); got != c.want {
			t.Errorf("FormatCurrencyCompact(%f) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	// 0.345 is a fraction, not a pre-multiplied percent.
	if got := FormatPercent(0.345); got != "34.5%" {
		t.Errorf("FormatPercent(0.345) = %q, want 34.5%%", got)
	}
	if got := FormatPercent(math.NaN()); got != "0.0%" {
		t.Errorf("FormatPercent(NaN) = %q, want 0.0%%", got)
	}
	if got := FormatPercent(math.Inf(-1)); got != "0.0%" {
		t.Errorf("FormatPercent(-Inf) = %q, want 0.0%%", got)
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1.52); got != "1.5x" {
		t.Errorf("FormatRatio(1.52) = %q, want 1.5x", got)
	}
	if got := FormatRatio(math.NaN()); got != "0.0x" {
		t.Errorf("FormatRatio(NaN) = %q, want 0.0x", got)
	}
}

func TestFormatDayCount(t *testing.T) {
	if got := FormatDayCount(45.6); got != "46" {
		t.Errorf("FormatDayCount(45.6) = %q, want 46", got)
	}
	if got := FormatDayCount(math.Inf(1)); got != "0" {
		t.Errorf("FormatDayCount(+Inf) = %q, want 0", got)
	}
}
