package agent

import (
	"context"
	"fmt"

	"dealdesk/pkg/core/llm"
)

// Config mirrors config/agents.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig configures one named agent task.
type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`    // Optional model override
	Description string `yaml:"description"`
}

// Manager resolves which provider handles each agent task.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
			"mock":     &llm.MockProvider{},
		},
	}
}

// RegisterProvider installs a provider under a name, replacing any
// default registered there.
func (m *Manager) RegisterProvider(name string, p llm.Provider) {
	m.providers[name] = p
}

func (m *Manager) GetProvider(agentType string) llm.Provider {
	// 1. Check for agent-specific override
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}

	// 2. Use global active provider
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}

	// 3. Fallback
	return m.providers["gemini"]
}

// GetProviderByName retrieves a provider instance by its specific name (e.g. "deepseek", "gemini")
func (m *Manager) GetProviderByName(name string) llm.Provider {
	if p, ok := m.providers[name]; ok {
		return p
	}
	return nil
}

// AgentDescriptions lists the configured agent tasks by description.
func (m *Manager) AgentDescriptions() map[string]string {
	out := make(map[string]string, len(m.config.Agents))
	for name, cfg := range m.config.Agents {
		out[name] = cfg.Description
	}
	return out
}

// ExecutePrompt resolves the provider for an agent task, applies the
// configured model override, and sends the prompt.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)

	merged := make(map[string]interface{}, len(options)+1)
	for k, v := range options {
		merged[k] = v
	}
	if cfg, ok := m.config.Agents[agentType]; ok && cfg.Model != "" {
		if _, set := merged["model"]; !set {
			merged["model"] = cfg.Model
		}
	}

	// Adapt instructions based on the model's specialized "teaching" style
	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)

	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, merged)
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	fmt.Printf("Global provider set to: %s\n", newProvider)
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}
