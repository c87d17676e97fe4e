package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginBottom(1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	artistStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	reasonStyle = lipgloss.NewStyle().Italic(true)
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
)

// View renders the UI based on the current state
func (m Model) View() string {
	switch m.current.Status {
	case domain.StatusLoading:
		return fmt.Sprintf("%s Finding songs for %q...\n", m.spinner.View(), m.vibe)
	case domain.StatusSuccess:
		return RenderSongs(m.current.Songs)
	case domain.StatusError:
		return RenderError(m.current.Message)
	default:
		return ""
	}
}

// RenderSongs draws one card per song in order. An empty result draws
// nothing.
func RenderSongs(songs domain.VibeResult) string {
	var b strings.Builder
	for _, song := range songs {
		b.WriteString(RenderCard(song))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderCard shows title, artist, reason and both search links.
func RenderCard(song domain.VibeSong) string {
	links := domain.LinksFor(song)
	body := strings.Join([]string{
		titleStyle.Render(song.Title),
		artistStyle.Render(song.Artist),
		reasonStyle.Render(song.Reason),
		"",
		infoStyle.Render("YouTube ") + linkStyle.Render(links.YouTube),
		infoStyle.Render("Spotify ") + linkStyle.Render(links.Spotify),
	}, "\n")
	return cardStyle.Render(body)
}

func RenderError(message string) string {
	return errorStyle.Render("✗ "+message) + "\n"
}
