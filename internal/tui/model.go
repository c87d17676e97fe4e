// Package tui renders a vibe request in the terminal with Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/services"
)

// Model is the Bubble Tea model for one vibe request. It drives the engine
// and renders whatever state the engine publishes.
type Model struct {
	vibe   string
	engine *services.VibeEngine

	states      <-chan domain.State
	unsubscribe func()

	current    domain.State
	sawLoading bool
	rejected   bool

	spinner spinner.Model
}

// NewModel subscribes to engine. Call Close once the program has exited.
func NewModel(engine *services.VibeEngine, vibe string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	states, unsubscribe := engine.Subscribe()
	return Model{
		vibe:        vibe,
		engine:      engine,
		states:      states,
		unsubscribe: unsubscribe,
		current:     engine.State(),
		spinner:     s,
	}
}

// State returns the last state the model observed.
func (m Model) State() domain.State {
	return m.current
}

// Rejected reports whether the engine refused the vibe, e.g. a blank prompt.
func (m Model) Rejected() bool {
	return m.rejected
}

func (m Model) Close() {
	m.unsubscribe()
}

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)
