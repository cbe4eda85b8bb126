package models

import (
	"strconv"

	"dealdesk/pkg/core/money"
)

// Amount keeps a parsed numeric value and the raw text it came from
// side by side. Forms re-render Display so a half-typed entry such as
// "1250." or "" survives a recompute instead of snapping to "0";
// calculations only ever read Value.
type Amount struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// AmountFromText parses free-form input into an Amount, preserving the
// original text for display.
func AmountFromText(text string) Amount {
	return Amount{Value: money.ParseAmount(text), Display: text}
}

// AmountOf wraps an already-numeric value.
func AmountOf(v float64) Amount {
	return Amount{Value: v, Display: strconv.FormatFloat(v, 'f', -1, 64)}
}
