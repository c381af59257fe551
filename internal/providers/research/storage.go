package research

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/duetsim/duet/pkg/log"
)

// FileStorage persists the research server config as JSON on disk.
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the config. A missing file is replaced with an empty default,
// but only when the parent directory already exists.
func (c *FileStorage) Load(ctx context.Context) (*Config, error) {
	c.mu.RLock()
	data, err := os.ReadFile(c.path)
	c.mu.RUnlock()

	switch {
	case err == nil:
		return parseConfig(data)
	case os.IsNotExist(err):
		if _, statErr := os.Stat(filepath.Dir(c.path)); os.IsNotExist(statErr) {
			return nil, fmt.Errorf("config directory does not exist: %w", err)
		}

		log.FromCtx(ctx).Info().Msg("research.json not found, creating default")

		cfg := &Config{MCPServers: make(map[string]ServerConfig)}
		if err := c.Save(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("failed to read research config: %w", err)
	}
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse research config: %w", err)
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]ServerConfig)
	}
	return &cfg, nil
}

func (c *FileStorage) Save(ctx context.Context, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Watch polls the file once a second and emits the parsed config whenever
// the mtime moves forward. Editing research.json while the service runs
// takes effect without a restart.
func (c *FileStorage) Watch(ctx context.Context) (<-chan Config, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	updates := make(chan Config)
	go c.poll(ctx, updates, info.ModTime())
	return updates, nil
}

func (c *FileStorage) poll(ctx context.Context, updates chan<- Config, lastMod time.Time) {
	defer close(updates)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cfg, modTime, err := c.reload(ctx, lastMod)
		if err != nil {
			// Treat a vanished or unreadable file as changed so the next
			// successful read is always emitted.
			lastMod = time.Time{}
			continue
		}
		if cfg == nil {
			continue
		}
		lastMod = modTime

		select {
		case updates <- *cfg:
		case <-ctx.Done():
			return
		}
	}
}

// reload parses the config when the file changed since lastMod and returns
// nil when it has not. Garbage content is logged and skipped.
func (c *FileStorage) reload(ctx context.Context, lastMod time.Time) (*Config, time.Time, error) {
	c.mu.RLock()
	data, err := os.ReadFile(c.path)
	c.mu.RUnlock()
	if err != nil {
		return nil, time.Time{}, err
	}

	info, err := os.Stat(c.path)
	if err != nil {
		return nil, time.Time{}, err
	}
	if !info.ModTime().After(lastMod) {
		return nil, lastMod, nil
	}

	cfg, err := parseConfig(data)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to parse research config")
		return nil, lastMod, nil
	}
	return cfg, info.ModTime(), nil
}
