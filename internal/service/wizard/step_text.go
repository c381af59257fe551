package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextStep asks one free-form question and applies the answer to the state.
type TextStep struct {
	prompt string
	hint   string
	input  textinput.Model
	apply  func(value string, state *BuilderState) error
	err    error
}

func NewTextStep(prompt, placeholder, hint string, apply func(string, *BuilderState) error) Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder

	return &TextStep{
		prompt: prompt,
		hint:   hint,
		input:  ti,
		apply:  apply,
	}
}

func (s *TextStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TextStep) Update(msg tea.Msg, state *BuilderState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if err := s.apply(strings.TrimSpace(s.input.Value()), state); err != nil {
				s.err = err
				return s, cmd
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TextStep) View(state *BuilderState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	b.WriteString(s.input.View() + "\n\n")
	if s.hint != "" {
		b.WriteString(hintStyle.Render(s.hint) + "\n")
	}
	if s.err != nil {
		b.WriteString(errorStyle.Render(s.err.Error()) + "\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}
