package buybox

import (
	"strings"

	"dealdesk/pkg/models"
)

// Labeled pairs a display label with a criterion's value and weight,
// ready for prompt construction. Labels match the lookup CriterionKey
// accepts, closing the loop between generation and scoring.
type Labeled struct {
	Label  string
	Value  string
	Weight int
}

// WeightedCriteria lists the weighted criteria in display order.
// Zero-weight criteria are omitted; the SDE bounds collapse into one
// "Financials (SDE)" entry.
func WeightedCriteria(c models.BuyBoxCriteria) []Labeled {
	all := []Labeled{
		{"Geography", c.Geography.Value, c.Geography.Weight},
		{"Industry", c.Industry.Value, c.Industry.Weight},
		{"Business Model", c.BusinessModel.Value, c.BusinessModel.Weight},
		{"Financials (SDE)", sdeRange(c), sdeWeight(c)},
		{"Revenue", c.MinRevenue.Value, c.MinRevenue.Weight},
		{"Valuation (Multiple)", c.AskingMultiple.Value, c.AskingMultiple.Weight},
		{"Owner Involvement", c.OwnerInvolvement.Value, c.OwnerInvolvement.Weight},
		{"Team Size", c.TeamSize.Value, c.TeamSize.Weight},
	}
	out := make([]Labeled, 0, len(all))
	for _, l := range all {
		if l.Weight > 0 {
			out = append(out, l)
		}
	}
	return out
}

// ContextCriteria lists the unweighted context the scorecard prompt
// carries but the scorer ignores.
func ContextCriteria(c models.BuyBoxCriteria) []Labeled {
	out := make([]Labeled, 0, 2)
	if len(c.IndustryExpertise) > 0 {
		out = append(out, Labeled{Label: "Industry Expertise", Value: strings.Join(c.IndustryExpertise, ", ")})
	}
	if c.Culture != "" {
		out = append(out, Labeled{Label: "Culture", Value: c.Culture})
	}
	return out
}

func sdeRange(c models.BuyBoxCriteria) string {
	switch {
	case c.MinSDE.Value != "" && c.MaxSDE.Value != "":
		return c.MinSDE.Value + " - " + c.MaxSDE.Value
	case c.MaxSDE.Value != "":
		return c.MaxSDE.Value
	default:
		return c.MinSDE.Value
	}
}

// sdeWeight is the weight of the collapsed SDE pair: the min bound's
// weight when set, otherwise the max bound's.
func sdeWeight(c models.BuyBoxCriteria) int {
	if c.MinSDE.Weight > 0 {
		return c.MinSDE.Weight
	}
	return c.MaxSDE.Weight
}
