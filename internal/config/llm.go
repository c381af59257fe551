package config

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/duetsim/duet/pkg/log"
)

var knownProviders = map[string]bool{
	"anthropic":     true,
	"openai":        true,
	"openrouter":    true,
	"ollama":        true,
	"custom-openai": true,
}

// LLMConfig selects the reply generator and carries the credentials for
// every supported vendor. It implements core.ProviderConfig.
type LLMConfig struct {
	Provider string `env:"DUET_LLM_PROVIDER" envDefault:"openrouter"`
	Model    string `env:"DUET_MODEL" envDefault:"google/gemma-3-27b-it:free"`

	AnthropicAPIKey  string `env:"DUET_ANTHROPIC_API_KEY"`
	OpenAIAPIKey     string `env:"DUET_OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"DUET_OPENROUTER_API_KEY"`
	OllamaAPIKey     string `env:"DUET_OLLAMA_API_KEY"`
	OllamaBaseURL    string `env:"DUET_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	CustomOpenAIBaseURL string `env:"DUET_CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"DUET_CUSTOM_OPENAI_API_KEY"`

	mu sync.RWMutex
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func (c *LLMConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

func (c *LLMConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel accepts either "model" or "provider/model". The provider part is
// only split off when it names a known vendor, so OpenRouter-style ids like
// "google/gemma-3-27b-it:free" pass through whole.
func (c *LLMConfig) SetModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("model must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if provider, rest, ok := strings.Cut(model, "/"); ok && knownProviders[provider] {
		c.Provider = provider
		c.Model = rest
		return nil
	}
	c.Model = model
	return nil
}

func (c *LLMConfig) GetAnthropicAPIKey() string  { return c.AnthropicAPIKey }
func (c *LLMConfig) GetOpenAIAPIKey() string     { return c.OpenAIAPIKey }
func (c *LLMConfig) GetOpenRouterAPIKey() string { return c.OpenRouterAPIKey }
func (c *LLMConfig) GetOllamaAPIKey() string     { return c.OllamaAPIKey }
func (c *LLMConfig) GetOllamaBaseURL() string    { return c.OllamaBaseURL }

func (c *LLMConfig) GetCustomOpenAIBaseURL() string { return c.CustomOpenAIBaseURL }
func (c *LLMConfig) GetCustomOpenAIAPIKey() string  { return c.CustomOpenAIAPIKey }
