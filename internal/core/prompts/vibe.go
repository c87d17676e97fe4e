// Package prompts holds the natural-language instructions sent to the
// generative providers.
package prompts

import (
	"fmt"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

const vibeTemplate = `You are a music expert curating a playlist for someone whose vibe is: "%s".
Suggest exactly %d songs that match this vibe. They can come from any artist or genre.
For each song give the title, the artist, and a single sentence explaining why it fits the vibe.
Respond only with JSON of the form {"songs":[{"title":"...","artist":"...","reason":"..."}]}.`

// VibeInstruction embeds an already-trimmed vibe into the song request.
func VibeInstruction(vibe string) string {
	return fmt.Sprintf(vibeTemplate, vibe, domain.RequestedSongs)
}
