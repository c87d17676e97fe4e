package tui

import "github.com/ewilliams-labs/vibefinder/internal/core/domain"

// Message types for Bubble Tea state transitions

type stateMsg struct {
	state domain.State
	ok    bool
}

type submittedMsg struct {
	accepted bool
}
