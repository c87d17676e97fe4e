package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Init submits the vibe and starts listening for state changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.submit(),
		m.listen(),
	)
}

// Update handles messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submittedMsg:
		if !msg.accepted {
			m.rejected = true
			return m, tea.Quit
		}
		return m, nil

	case stateMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		m.current = msg.state
		if !m.current.Settled() {
			m.sawLoading = true
			return m, m.listen()
		}
		if m.sawLoading {
			return m, tea.Quit
		}
		return m, m.listen()
	}

	return m, nil
}

// Command functions (run async)

func (m Model) submit() tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{accepted: m.engine.Submit(m.vibe)}
	}
}

func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-m.states
		return stateMsg{state: st, ok: ok}
	}
}
