// Package state carries the few mutable knobs a live session can flip.
package state

import (
	"context"

	"github.com/duetsim/duet/internal/core"
)

type GlobalState struct {
	provider core.ModelSwitcher
}

func NewGlobalState(provider core.ModelSwitcher) *GlobalState {
	return &GlobalState{
		provider: provider,
	}
}

// ChangeModel swaps the generation model for every agent sharing the
// provider. Dialogues already in flight pick it up on their next turn.
func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	return s.provider.SetModel(ctx, model)
}
