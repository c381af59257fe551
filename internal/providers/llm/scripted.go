package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/duetsim/duet/internal/core"
)

// Scripted replays a fixed list of lines instead of calling a backend. It
// drives offline demos and deterministic tests where the interesting part
// is what the listener infers, not what the model generates.
type Scripted struct {
	mu    sync.Mutex
	lines []string
	next  int
}

func NewScripted(lines []string) *Scripted {
	return &Scripted{lines: lines}
}

func (s *Scripted) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.lines) {
		return core.Message{}, fmt.Errorf("script exhausted after %d lines", len(s.lines))
	}
	line := s.lines[s.next]
	s.next++
	return core.Message{Role: core.RoleAssistant, Content: line}, nil
}

// Remaining reports how many scripted lines are left to play.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) - s.next
}
