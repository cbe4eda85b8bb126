package utils

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// CleanMarkdown strips an outer code fence from model output. Scorecard
// generations arrive as ```markdown blocks and scan extractions as
// ```json blocks; the content inside is what downstream parsing wants.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") {
		return cleaned
	}

	cleaned = strings.TrimPrefix(cleaned, "```")
	// Drop a language tag line such as ```markdown or ```json.
	if i := strings.IndexByte(cleaned, '\n'); i >= 0 {
		tag := strings.TrimSpace(cleaned[:i])
		if tag == "" || tag == "markdown" || tag == "json" {
			cleaned = cleaned[i+1:]
		}
	}
	cleaned = strings.TrimSuffix(cleaned, "```")

	return strings.TrimSpace(cleaned)
}

// ValidateMarkdown checks if the string is parseable Markdown using
// Goldmark. Goldmark is very permissive, so this is a basic sanity
// check rather than a lint.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}
