package domain

import "time"

// Outcome records how one vibe request ended. It intentionally carries no
// prompt text and no songs.
type Outcome struct {
	SessionID string
	Status    Status
	SongCount int
	Duration  time.Duration
	At        time.Time
}

// OutcomeSummary aggregates recorded outcomes.
type OutcomeSummary struct {
	Total             int     `json:"total"`
	Successes         int     `json:"successes"`
	Failures          int     `json:"failures"`
	AverageSongs      float64 `json:"average_songs"`
	AverageDurationMs float64 `json:"average_duration_ms"`
}
