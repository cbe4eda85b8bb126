package llm

import (
	"context"
	"time"
)

// MockProvider returns canned responses for tests and offline runs.
type MockProvider struct {
	Response string
	Err      error
	Latency  time.Duration

	// Captured from the most recent call, for assertions.
	LastPrompt       string
	LastSystemPrompt string
	LastOptions      map[string]interface{}
}

// Ensure interface compliance
var _ Provider = (*MockProvider)(nil)

func (p *MockProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	p.LastPrompt = prompt
	p.LastSystemPrompt = systemPrompt
	p.LastOptions = options

	if p.Latency > 0 {
		select {
		case <-time.After(p.Latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

func (p *MockProvider) AdaptInstructions(raw string) string {
	return raw
}
