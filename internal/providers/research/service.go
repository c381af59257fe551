package research

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/pkg/log"
)

// ConnectionPool is the slice of Pool the service drives.
type ConnectionPool interface {
	Add(ctx context.Context, name string, cfg ServerConfig) (*ManagedClient, error)
	Del(name string) error
	Get(name string) (*ManagedClient, bool)
	All() map[string]*ManagedClient
	Close() error
}

type Timeouts struct {
	Connect  time.Duration
	ToolList time.Duration
	ToolCall time.Duration
}

func NewDefaultTimeouts() *Timeouts {
	return &Timeouts{
		Connect:  30 * time.Second,
		ToolList: 5 * time.Second,
		ToolCall: 2 * time.Minute,
	}
}

// Service keeps the configured research servers connected and exposes their
// tools under server-prefixed names so two servers can both offer "search".
type Service struct {
	registry *Registry
	pool     ConnectionPool
	cache    *ToolCache
	timeouts *Timeouts

	activeConfigs map[string]ServerConfig
	mu            sync.RWMutex
}

func NewService(pool ConnectionPool, registry *Registry, cache *ToolCache) *Service {
	return &Service{
		pool:          pool,
		registry:      registry,
		cache:         cache,
		timeouts:      NewDefaultTimeouts(),
		activeConfigs: make(map[string]ServerConfig),
	}
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.registry.Load(ctx); err != nil {
		return err
	}

	servers := s.registry.List()

	s.mu.Lock()
	for name, cfg := range servers {
		s.activeConfigs[name] = cfg
	}
	s.mu.Unlock()

	for name, cfg := range servers {
		go s.connectServer(ctx, name, cfg)
	}

	updates, err := s.registry.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch registry: %w", err)
	}
	go s.watchConfig(ctx, updates)

	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	return s.pool.Close()
}

func (s *Service) connectServer(ctx context.Context, name string, cfg ServerConfig) {
	connectCtx, cancel := context.WithTimeout(ctx, s.timeouts.Connect)
	defer cancel()

	logger := log.FromCtx(ctx).With().Str("server", name).Logger()
	logger.Info().
		Str("url", cfg.URL).
		Str("command", cfg.Command).
		Msg("starting research server")

	if _, err := s.pool.Add(connectCtx, name, cfg); err != nil {
		logger.Error().Err(err).Msg("failed to start research server")
		return
	}

	s.cache.Invalidate()
	logger.Info().Msg("research server connected")
}

func (s *Service) watchConfig(ctx context.Context, updates <-chan Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-updates:
			if !ok {
				return
			}
			s.syncServers(ctx, cfg.MCPServers)
		}
	}
}

// syncServers reconciles the running connections with a freshly loaded
// config: gone servers are torn down, new or changed ones (re)connected.
func (s *Service) syncServers(ctx context.Context, desired map[string]ServerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.FromCtx(ctx)

	for name := range s.activeConfigs {
		if _, keep := desired[name]; keep {
			continue
		}
		logger.Info().Str("server", name).Msg("removing research server")
		s.pool.Del(name)
		delete(s.activeConfigs, name)
		s.cache.Invalidate()
	}

	for name, cfg := range desired {
		active, known := s.activeConfigs[name]
		if known && reflect.DeepEqual(active, cfg) {
			continue
		}
		if known {
			logger.Info().Str("server", name).Msg("restarting research server")
		} else {
			logger.Info().Str("server", name).Msg("adding research server")
		}
		s.connectServer(ctx, name, cfg)
		s.activeConfigs[name] = cfg
		s.cache.Invalidate()
	}
}

func (s *Service) GetTools(ctx context.Context) ([]core.Tool, error) {
	if tools, _, ok := s.cache.Get(); ok {
		return tools, nil
	}

	tools, routing := s.collectTools(ctx)
	s.cache.Update(tools, routing)
	return tools, nil
}

// collectTools asks every connected server for its tool list in parallel and
// builds the name→server routing table as results come in.
func (s *Service) collectTools(ctx context.Context) ([]core.Tool, map[string]string) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		all     []core.Tool
		routing = make(map[string]string)
	)

	for name, cli := range s.pool.All() {
		wg.Add(1)
		go func(name string, cli *ManagedClient) {
			defer wg.Done()

			tools, err := s.listServerTools(ctx, name, cli)
			if err != nil {
				log.FromCtx(ctx).Error().Err(err).Str("server", name).Msg("failed to list tools")
				return
			}

			mu.Lock()
			all = append(all, tools...)
			for _, t := range tools {
				routing[t.Function.Name] = name
			}
			mu.Unlock()
		}(name, cli)
	}
	wg.Wait()

	return all, routing
}

func (s *Service) listServerTools(ctx context.Context, name string, cli *ManagedClient) ([]core.Tool, error) {
	listCtx, cancel := context.WithTimeout(ctx, s.timeouts.ToolList)
	defer cancel()

	resp, err := cli.ListTools(listCtx, mcpproto.ListToolsRequest{})
	if err != nil {
		return nil, err
	}

	tools := make([]core.Tool, 0, len(resp.Tools))
	for _, t := range resp.Tools {
		schema, _ := json.Marshal(t.InputSchema)
		tools = append(tools, core.Tool{
			Type: "function",
			Function: core.Function{
				Name:        fmt.Sprintf("%s.%s", name, t.Name),
				Description: t.Description,
				Parameters:  schema,
			},
		})
	}
	return tools, nil
}

func (s *Service) CallTool(ctx context.Context, name string, args string) (string, error) {
	log.FromCtx(ctx).Info().Str("tool", name).Str("args", args).Msg("executing research tool")

	_, routing, _ := s.cache.Get()
	serverName, ok := routing[name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}

	cli, ok := s.pool.Get(serverName)
	if !ok {
		return "", fmt.Errorf("server %s is not available", serverName)
	}

	argsMap := make(map[string]any)
	if args != "" {
		if err := json.Unmarshal([]byte(args), &argsMap); err != nil {
			return "", fmt.Errorf("invalid json arguments: %w", err)
		}
	}

	req := mcpproto.CallToolRequest{}
	req.Params.Name = strings.TrimPrefix(name, serverName+".")
	req.Params.Arguments = argsMap

	callCtx, cancel := context.WithTimeout(ctx, s.timeouts.ToolCall)
	defer cancel()

	res, err := cli.CallTool(callCtx, req)
	if err != nil {
		return "", err
	}

	var texts []string
	for _, content := range res.Content {
		if text, ok := textContent(content); ok {
			texts = append(texts, text)
		}
	}
	out := strings.Join(texts, "\n")

	if res.IsError {
		return "", fmt.Errorf("tool execution failed: %s", out)
	}
	return out, nil
}

func textContent(c mcpproto.Content) (string, bool) {
	switch t := c.(type) {
	case mcpproto.TextContent:
		return t.Text, true
	case *mcpproto.TextContent:
		return t.Text, true
	}
	return "", false
}
