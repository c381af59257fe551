package wizard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/duetsim/duet/internal/profile"
)

// SaveStep writes the built persona to the profile store.
type SaveStep struct {
	store *profile.Store
	err   error
	saved bool
}

func NewSaveStep(store *profile.Store) Step {
	return &SaveStep{store: store}
}

func (s *SaveStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveStep) Update(msg tea.Msg, state *BuilderState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	id, err := s.store.Save(state.Profile)
	if err != nil {
		s.err = fmt.Errorf("failed to save persona: %w", err)
		return s, nil
	}

	state.SavedID = id
	s.saved = true
	return nil, nil
}

func (s *SaveStep) View(state *BuilderState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Persona saved!\n"
	}
	return "Saving persona...\n"
}
