// Package wizard is the interactive persona builder.
package wizard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/duetsim/duet/internal/profile"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step represents a single step in the persona builder.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *BuilderState, width, height int) (Step, tea.Cmd)
	View(state *BuilderState) string
}

func getSteps(store *profile.Store) []Step {
	return []Step{
		NewTextStep("What is the persona's name?", "Maya Chen", "", applyName),
		NewTextStep("Age?", "28", "leave empty to skip", applyAge),
		NewTextStep("Occupation?", "marine biologist", "leave empty to skip", applyOccupation),
		NewTextStep("Hobbies?", "hiking, photography", "comma separated, empty to skip", applyHobbies),
		NewTextStep("Personality traits?", "adventurous, curious", "comma separated, empty to skip", applyTraits),
		NewTextStep("Goals?", "see every continent", "comma separated, empty to skip", applyGoals),
		NewTextStep("Location?", "Portland", "leave empty to skip", applyLocation),
		NewSaveStep(store),
	}
}

type errMsg error
type nextMsg struct{}

// model walks the wizard steps in order.
type model struct {
	steps       []Step
	currentStep int
	state       *BuilderState
	quitting    bool
	err         error
	width       int
	height      int
}

func initialModel(store *profile.Store) model {
	return model{
		steps: getSteps(store),
		state: NewBuilderState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 && m.steps[0] != nil {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		m.err = msg
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)

	if nextStep == nil {
		// nil means the current step finished
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	if nextStep != m.steps[m.currentStep] {
		m.steps[m.currentStep] = nextStep
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Persona builder cancelled.\n"
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	}

	if m.currentStep >= len(m.steps) {
		return fmt.Sprintf("Persona saved as %q.\n", m.state.SavedID)
	}

	return titleStyle.Render("Building a persona 🎭") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and returns the built persona.
func RunWizard(store *profile.Store) (*BuilderState, error) {
	p := tea.NewProgram(initialModel(store), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("persona builder interrupted")
	}

	return finalModel.state, nil
}
