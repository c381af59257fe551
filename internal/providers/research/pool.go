package research

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
)

// TransportFactory builds the dialer for a transport type. Tests swap it to
// avoid spawning real server processes.
type TransportFactory func(TransportType) (Transport, error)

// Pool keeps one live connection per configured search backend.
type Pool struct {
	mu      sync.RWMutex
	conns   map[string]*ManagedClient
	factory TransportFactory
}

var _ ConnectionPool = (*Pool)(nil)

func NewPool() *Pool {
	return NewPoolWithFactory(NewTransport)
}

func NewPoolWithFactory(factory TransportFactory) *Pool {
	return &Pool{
		conns:   make(map[string]*ManagedClient),
		factory: factory,
	}
}

// Add dials the server and stores the connection under name. An existing
// connection with the same name is closed in the background once displaced.
func (p *Pool) Add(ctx context.Context, name string, cfg ServerConfig) (*ManagedClient, error) {
	transportType, err := cfg.GetTransport()
	if err != nil {
		return nil, err
	}

	dial, err := p.factory(transportType)
	if err != nil {
		return nil, err
	}

	conn, err := dial(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("transport creation failed: %w", err)
	}

	managed := &ManagedClient{
		Client: conn,
		name:   name,
	}

	p.mu.Lock()
	old := p.conns[name]
	p.conns[name] = managed
	p.mu.Unlock()

	if old != nil {
		go old.Close()
	}
	return managed, nil
}

func (p *Pool) Del(name string) error {
	p.mu.Lock()
	cli, ok := p.conns[name]
	delete(p.conns, name)
	p.mu.Unlock()

	if !ok {
		return nil
	}
	return cli.Close()
}

func (p *Pool) Get(name string) (*ManagedClient, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cli, ok := p.conns[name]
	return cli, ok
}

func (p *Pool) All() map[string]*ManagedClient {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return maps.Clone(p.conns)
}

// Close tears down every connection and empties the pool.
func (p *Pool) Close() error {
	p.mu.Lock()
	conns := p.conns
	p.conns = make(map[string]*ManagedClient)
	p.mu.Unlock()

	var errs []error
	for _, cli := range conns {
		errs = append(errs, cli.Close())
	}
	return errors.Join(errs...)
}
