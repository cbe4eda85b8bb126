package money

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// NUMERIC PARSING
// ============================================================

// nonNumeric matches everything except digits, the decimal point and
// the minus sign. Currency symbols, thousands separators and stray
// letters all fall away before parsing.
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount converts a human-entered numeric string ("$1,250,000",
// "(3,500)", "12.5") into a float64. Blank, dash-only and unparseable
// input all yield 0; the caller keeps the raw text if it needs to
// re-render what the user typed.
func ParseAmount(raw string) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0
	}

	// Accounting notation: (3,500) means -3500.
	isNegative := strings.Contains(v, "(") && strings.Contains(v, ")")

	cleaned := nonNumeric.ReplaceAllString(v, "")
	if cleaned == "" || cleaned == "." || cleaned == "-" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if isNegative && value > 0 {
		value = -value
	}
	return value
}

// ============================================================
// FORMATTING
// ============================================================

// FormatCurrency renders a whole-dollar amount with thousands grouping,
// e.g. 1234567.89 -> "$1,234,568". Non-finite input renders as "$0".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "$" + groupThousands(strconv.FormatInt(n, 10))
}

// FormatCurrencyCompact abbreviates large amounts: "$2.3M" above one
// million, "$450.0k" above one thousand, whole dollars below.
func FormatCurrencyCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	sign := ""
	abs := math.Abs(v)
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1000000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1000000)
	case abs >= 1000:
		return fmt.Sprintf("%s$%.1fk", sign, abs/1000)
	default:
		return sign + "$" + strconv.FormatInt(int64(math.Round(abs)), 10)
	}
}

// FormatPercent renders a fraction as a percentage with one decimal,
// e.g. 0.345 -> "34.5%". Non-finite input renders as "0.0%".
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// FormatRatio renders a multiple with one decimal and an "x" suffix,
// e.g. 1.52 -> "1.5x". Non-finite input renders as "0.0x".
func FormatRatio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.0x"
	}
	return fmt.Sprintf("%.1fx", v)
}

// FormatDayCount renders whole days for DSO/DPO style metrics.
// Non-finite input renders as "0".
func FormatDayCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatInt(int64(math.Round(v)), 10)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
