package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, history []Message, tools []Tool) (Message, error)
}

// ModelSwitcher is implemented by providers that can be repointed at a
// different model while the process is running.
type ModelSwitcher interface {
	SetModel(ctx context.Context, model string) error
	GetModel() string
}

// ModelLister is implemented by providers that can enumerate the models
// their backend serves.
type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

// Researcher looks up public background on a persona before a dialogue.
type Researcher interface {
	Research(ctx context.Context, personName string) (string, error)
}
