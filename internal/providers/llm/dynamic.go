package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/duetsim/duet/internal/core"
)

var _ core.ModelSwitcher = (*DynamicProvider)(nil)

// DynamicProvider wraps the configured provider and lets the /model command
// swap it out mid-session without restarting running dialogues.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
	mu      sync.RWMutex
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: config,
	}

	provider, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(&provider)
	return d, nil
}

func (d *DynamicProvider) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	provider := *d.current.Load().(*core.AIProvider)
	return provider.Chat(ctx, history, tools)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	provider := *d.current.Load().(*core.AIProvider)
	if lister, ok := provider.(core.ModelLister); ok {
		return lister.Models(ctx)
	}
	return nil, fmt.Errorf("provider %s cannot list models", d.config.GetProvider())
}

func (d *DynamicProvider) GetModel() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config.GetModel()
}

// SetModel persists the new model in config, builds a provider for it and
// swaps it in atomically. In-flight Chat calls finish on the old provider.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.config.SetModel(model); err != nil {
		return err
	}

	newProvider, err := NewProvider(ctx, d.config)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.current.Store(&newProvider)
	return nil
}
