package buybox

import (
	"math"
	"regexp"
	"strings"

	"dealdesk/pkg/models"
)

// =============================================================================
// BUY-BOX FIT SCORER
// =============================================================================
// Scores an externally generated markdown scorecard table against the
// acquirer's weighted criteria. Rows look like:
//
//	| Geography (Weight: 2) | Houston | Yes | Target is in-market |
//
// "Yes" earns the criterion's full weight, "?" earns 30%, anything else
// earns nothing. Malformed rows are skipped, never rejected.

const partialCredit = 0.3

var (
	weightAnnotation = regexp.MustCompile(`\s*\(Weight:\s*\d+\)\s*$`)
	htmlTag          = regexp.MustCompile(`<[^>]*>`)
)

// criterionKeys maps the row labels the generator emits to the internal
// criterion keys. The table comes from a language model, so this lookup
// is the fragile seam: every accepted label lives here and nowhere else.
// "Financials (SDE)" covers the min/max SDE pair. Culture maps to no
// key and is never scored.
var criterionKeys = map[string]string{
	"geography":            "geography",
	"industry":             "industry",
	"business model":       "business_model",
	"financials (sde)":     "min_sde",
	"revenue":              "min_revenue",
	"valuation (multiple)": "asking_multiple",
	"owner involvement":    "owner_involvement",
	"team size":            "team_size",
	"industry expertise":   "industry_expertise",
	"culture":              "",
}

// CriterionKey maps a scorecard row label to its canonical criterion
// key. Matching is case-insensitive and whitespace-trimmed. An empty
// key with ok=true means the label is recognized but never scored.
func CriterionKey(name string) (string, bool) {
	key, ok := criterionKeys[strings.ToLower(strings.TrimSpace(name))]
	return key, ok
}

// Weights extracts the scoring weights from the fixed criteria set.
// Industry expertise and culture carry no weight by construction.
func Weights(c models.BuyBoxCriteria) map[string]int {
	return map[string]int{
		"geography":         c.Geography.Weight,
		"industry":          c.Industry.Weight,
		"business_model":    c.BusinessModel.Weight,
		"min_sde":           c.MinSDE.Weight,
		"max_sde":           c.MaxSDE.Weight,
		"min_revenue":       c.MinRevenue.Weight,
		"asking_multiple":   c.AskingMultiple.Weight,
		"owner_involvement": c.OwnerInvolvement.Weight,
		"team_size":         c.TeamSize.Weight,
	}
}

// TotalPossible sums the criterion weights. When both SDE bounds carry
// a weight the pair counts once (as "Financials (SDE)"), so the max
// weight drops out of the denominator.
func TotalPossible(weights map[string]int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if weights["min_sde"] > 0 && weights["max_sde"] > 0 {
		total -= weights["max_sde"]
	}
	return total
}

// Score parses the scorecard text and returns the weighted fit score.
// A buy box with no weights at all scores a fixed 50: no preference
// expressed, nothing to divide by. Text with no parseable rows scores 0.
// The result is round(achieved/total*100) and is deliberately not
// clamped; malformed weights can in principle push it outside [0, 100].
func Score(scorecard string, criteria models.BuyBoxCriteria) int {
	weights := Weights(criteria)
	total := TotalPossible(weights)
	if total == 0 {
		return 50
	}

	achieved := 0.0
	lines := strings.Split(scorecard, "\n")
	// First two lines are the table header and separator.
	if len(lines) <= 2 {
		return 0
	}
	for _, line := range lines[2:] {
		cells := splitRow(line)
		if len(cells) < 4 {
			continue
		}

		key, ok := CriterionKey(cleanCriterionName(cells[0]))
		if !ok || key == "" {
			continue
		}
		weight := weights[key]
		if weight == 0 {
			continue
		}

		switch normalizeFit(cells[2]) {
		case "yes":
			achieved += float64(weight)
		case "?":
			achieved += float64(weight) * partialCredit
		}
	}

	return int(math.Round(achieved / float64(total) * 100))
}

// splitRow splits a markdown table row on pipes and trims each cell.
// Pipe-bounded rows leave empty boundary cells, which are dropped.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// cleanCriterionName strips bold markup and the trailing "(Weight: N)"
// annotation from a criterion cell.
func cleanCriterionName(cell string) string {
	name := strings.ReplaceAll(cell, "**", "")
	name = weightAnnotation.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// normalizeFit lowercases the fit cell and strips any embedded HTML
// before matching, so "<b>Yes</b>" and "YES" both read as "yes".
func normalizeFit(cell string) string {
	return strings.ToLower(strings.TrimSpace(htmlTag.ReplaceAllString(cell, "")))
}
