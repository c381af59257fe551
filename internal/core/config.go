package core

import "context"

// ProviderConfig exposes the vendor settings the provider factory reads.
// One getter per vendor keeps the factory free of env lookups.
type ProviderConfig interface {
	GetModel() string
	SetModel(model string) error
	GetProvider() string
	GetAnthropicAPIKey() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetOllamaAPIKey() string
	GetOllamaBaseURL() string
	GetCustomOpenAIBaseURL() string
	GetCustomOpenAIAPIKey() string
}

// GlobalState swaps the model for every running session at once.
type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
}
