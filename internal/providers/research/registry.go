package research

import (
	"context"
	"maps"
	"sync"
)

// Storage persists the research server config and reports external edits.
type Storage interface {
	Load(ctx context.Context) (*Config, error)
	Save(ctx context.Context, cfg *Config) error
	Watch(ctx context.Context) (<-chan Config, error)
}

// Registry is the in-memory view of the research server config. Mutations
// persist first and update the view only when the write succeeded.
type Registry struct {
	storage Storage
	mu      sync.RWMutex
	servers map[string]ServerConfig
}

func NewRegistry(storage Storage) *Registry {
	return &Registry{
		storage: storage,
		servers: make(map[string]ServerConfig),
	}
}

func (r *Registry) Load(ctx context.Context) error {
	cfg, err := r.storage.Load(ctx)
	if err != nil {
		return err
	}

	r.replace(cfg.MCPServers)
	return nil
}

func (r *Registry) Add(ctx context.Context, name string, cfg ServerConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]ServerConfig, len(r.servers)+1)
	maps.Copy(next, r.servers)
	next[name] = cfg

	if err := r.storage.Save(ctx, &Config{MCPServers: next}); err != nil {
		return err
	}

	r.servers = next
	return nil
}

func (r *Registry) Remove(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]ServerConfig, len(r.servers))
	maps.Copy(next, r.servers)
	delete(next, name)

	if err := r.storage.Save(ctx, &Config{MCPServers: next}); err != nil {
		return err
	}

	r.servers = next
	return nil
}

func (r *Registry) Get(name string) (ServerConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.servers[name]
	return cfg, ok
}

func (r *Registry) List() map[string]ServerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Clone(r.servers)
}

// Watch forwards storage updates, refreshing the in-memory view before each
// one so readers never see a config older than what subscribers received.
func (r *Registry) Watch(ctx context.Context) (<-chan Config, error) {
	ch, err := r.storage.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan Config)
	go func() {
		defer close(out)
		for cfg := range ch {
			r.replace(cfg.MCPServers)

			select {
			case out <- cfg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (r *Registry) replace(servers map[string]ServerConfig) {
	if servers == nil {
		servers = make(map[string]ServerConfig)
	}

	r.mu.Lock()
	r.servers = servers
	r.mu.Unlock()
}
