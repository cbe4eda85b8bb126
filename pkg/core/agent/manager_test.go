package agent

import (
	"context"
	"testing"

	"dealdesk/pkg/core/llm"
)

func testConfig() Config {
	return Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			"scorecard": {Provider: "deepseek", Description: "buy-box scorecard generation"},
			"document_scan": {
				Provider: "gemini",
				Model:    "gemini-2.0-flash-exp",
			},
		},
	}
}

func TestGetProviderResolution(t *testing.T) {
	m := NewManager(testConfig())

	// Agent-specific override wins.
	if _, ok := m.GetProvider("scorecard").(*llm.DeepSeekProvider); !ok {
		t.Errorf("scorecard provider = %T, want DeepSeekProvider", m.GetProvider("scorecard"))
	}

	// Unconfigured agents use the global active provider.
	if _, ok := m.GetProvider("unknown_task").(*llm.GeminiProvider); !ok {
		t.Errorf("unknown task provider = %T, want GeminiProvider", m.GetProvider("unknown_task"))
	}

	// A bad active provider falls back to gemini.
	m2 := NewManager(Config{ActiveProvider: "nope"})
	if _, ok := m2.GetProvider("anything").(*llm.GeminiProvider); !ok {
		t.Errorf("fallback provider = %T, want GeminiProvider", m2.GetProvider("anything"))
	}
}

func TestExecutePromptMergesModel(t *testing.T) {
	m := NewManager(testConfig())
	mock := &llm.MockProvider{Response: "ok"}
	m.RegisterProvider("gemini", mock)

	out, err := m.ExecutePrompt(context.Background(), "document_scan", "scan this", "system", nil)
	if err != nil {
		t.Fatalf("ExecutePrompt failed: %v", err)
	}
	if out != "ok" {
		t.Errorf("response = %q, want ok", out)
	}
	if mock.LastPrompt != "scan this" {
		t.Errorf("prompt = %q", mock.LastPrompt)
	}
	if mock.LastOptions["model"] != "gemini-2.0-flash-exp" {
		t.Errorf("model option = %v, want gemini-2.0-flash-exp", mock.LastOptions["model"])
	}

	// Caller-supplied model beats the configured one.
	_, err = m.ExecutePrompt(context.Background(), "document_scan", "scan", "sys", map[string]interface{}{"model": "custom"})
	if err != nil {
		t.Fatalf("ExecutePrompt failed: %v", err)
	}
	if mock.LastOptions["model"] != "custom" {
		t.Errorf("model option = %v, want custom", mock.LastOptions["model"])
	}
}

func TestSetGlobalProvider(t *testing.T) {
	m := NewManager(testConfig())

	if err := m.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("SetGlobalProvider failed: %v", err)
	}
	if m.GetActiveProvider() != "deepseek" {
		t.Errorf("active provider = %q, want deepseek", m.GetActiveProvider())
	}

	if err := m.SetGlobalProvider("claude"); err == nil {
		t.Error("expected error for unregistered provider")
	}
}
