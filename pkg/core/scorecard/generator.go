// Package scorecard turns a buyer's weighted criteria and a company
// profile into the Markdown fit scorecard the buy-box scorer grades.
package scorecard

import (
	"context"
	"fmt"
	"strings"

	"dealdesk/pkg/core/buybox"
	"dealdesk/pkg/core/llm"
	"dealdesk/pkg/core/prompt"
	"dealdesk/pkg/core/utils"
	"dealdesk/pkg/models"
)

// Generator produces scorecards through an LLM provider.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate asks the model for a scorecard table. The returned text is
// fence-stripped and ready for the fit scorer.
func (g *Generator) Generate(ctx context.Context, criteria models.BuyBoxCriteria, profile string) (string, error) {
	pt, err := prompt.Get().GetPrompt(prompt.PromptIDs.BuyBoxScorecard)
	if err != nil {
		return "", err
	}

	weighted := buybox.WeightedCriteria(criteria)
	if len(weighted) == 0 {
		return "", fmt.Errorf("SCORECARD_NO_CRITERIA: all criterion weights are zero")
	}

	lines := make([]string, 0, len(weighted))
	for _, c := range weighted {
		lines = append(lines, fmt.Sprintf("- %s (Weight: %d): %s", c.Label, c.Weight, c.Value))
	}
	var contextLines []string
	for _, c := range buybox.ContextCriteria(criteria) {
		contextLines = append(contextLines, fmt.Sprintf("- %s: %s", c.Label, c.Value))
	}

	userPrompt, err := prompt.RenderUserPrompt(pt, prompt.NewContext().
		Set("Criteria", strings.Join(lines, "\n")).
		Set("Context", strings.Join(contextLines, "\n")).
		Set("Profile", profile))
	if err != nil {
		return "", err
	}

	raw, err := g.provider.GenerateResponse(ctx, userPrompt, pt.SystemPrompt, nil)
	if err != nil {
		return "", err
	}

	cleaned := utils.CleanMarkdown(raw)
	if !strings.Contains(cleaned, "|") {
		return "", fmt.Errorf("SCORECARD_NO_TABLE: model returned no table")
	}
	if !utils.ValidateMarkdown(cleaned) {
		return "", fmt.Errorf("SCORECARD_INVALID_MARKDOWN")
	}

	return cleaned, nil
}
