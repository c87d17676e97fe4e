package ports

import (
	"context"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

// SongSuggester asks a generative text service for songs matching a vibe.
// Implementations must return an error for every transport, status or
// schema failure; the engine decides what the user sees.
type SongSuggester interface {
	SuggestSongs(ctx context.Context, vibe string) (domain.VibeResult, error)
}
