// Package scan extracts annual P&L lines from pasted deal documents
// (broker packages, tax summaries) with a Gemini model and returns
// structured records ready to merge into a workbook.
package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"dealdesk/pkg/core/ingest"
	"dealdesk/pkg/core/prompt"
	"dealdesk/pkg/core/utils"
)

// DocumentScanner is the surface the API layer depends on.
type DocumentScanner interface {
	ScanDocument(ctx context.Context, document string) ([]ingest.ScanRecord, error)
}

// Agent runs document scans against the Gemini API.
type Agent struct {
	client    *genai.Client
	modelName string
}

var _ DocumentScanner = (*Agent)(nil)

// NewAgent creates a scan agent. GEMINI_API_KEY must be set.
func NewAgent(ctx context.Context) (*Agent, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &Agent{
		client:    client,
		modelName: "gemini-2.0-flash-exp",
	}, nil
}

// WithModel overrides the default model name.
func (a *Agent) WithModel(name string) *Agent {
	if name != "" {
		a.modelName = name
	}
	return a
}

// scanPayload mirrors the JSON shape the scan prompt pins.
type scanPayload struct {
	Records []ingest.ScanRecord `json:"records"`
}

// ScanDocument extracts the annual records from one document.
func (a *Agent) ScanDocument(ctx context.Context, document string) ([]ingest.ScanRecord, error) {
	pt, err := prompt.Get().GetPrompt(prompt.PromptIDs.ScanFinancials)
	if err != nil {
		return nil, err
	}

	userPrompt, err := prompt.RenderUserPrompt(pt, prompt.NewContext().Set("Document", document))
	if err != nil {
		return nil, err
	}

	// Extraction wants determinism, not creativity.
	model := a.client.GenerativeModel(a.modelName)
	model.SetTemperature(0.1)

	fullPrompt := fmt.Sprintf("%s\n\n%s", pt.SystemPrompt, userPrompt)

	resp, err := model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("SCAN_GENERATION_FAILED: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("SCAN_EMPTY_RESPONSE: no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	records, err := ParseRecords(sb.String())
	if err != nil {
		return nil, err
	}

	log.Printf("[SCAN] Extracted %d annual records", len(records))
	return records, nil
}

// ParseRecords decodes raw model output into scan records. The output
// often arrives fenced or slightly malformed, so it goes through the
// markdown cleanup and the lenient JSON ladder.
func ParseRecords(raw string) ([]ingest.ScanRecord, error) {
	cleaned := utils.CleanMarkdown(raw)

	var payload scanPayload
	if _, err := utils.SmartParse(cleaned, &payload); err != nil {
		return nil, fmt.Errorf("SCAN_PARSE_FAILED: %v", err)
	}
	return payload.Records, nil
}

// ScanDocuments scans several documents concurrently. Results keep the
// input order; the first failure cancels the remaining scans.
func (a *Agent) ScanDocuments(ctx context.Context, documents []string) ([][]ingest.ScanRecord, error) {
	results := make([][]ingest.ScanRecord, len(documents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, doc := range documents {
		g.Go(func() error {
			records, err := a.ScanDocument(gctx, doc)
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
