package tui

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

// AskVibe prompts for a vibe until a non-blank one is entered.
func AskVibe() (string, error) {
	var vibe string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's your vibe?").
				Placeholder("late night drive, rainy sunday, gym warmup...").
				Value(&vibe).
				Validate(func(s string) error {
					if _, ok := domain.NormalizePrompt(s); !ok {
						return errors.New("tell me a vibe first")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return vibe, nil
}
