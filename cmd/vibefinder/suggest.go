package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/services"
	"github.com/ewilliams-labs/vibefinder/internal/tui"
)

var interactive bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [vibe...]",
	Short: "Suggest songs for a vibe",
	Example: `  vibefinder suggest late night drive
  vibefinder suggest -i`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuggest(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	suggestCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for the vibe and show progress")
}

func runSuggest(ctx context.Context, vibe string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	suggester, _, err := newSuggester(ctx, cfg)
	if err != nil {
		return err
	}
	engine := services.NewVibeEngine(suggester,
		services.WithLogger(logger.With("provider", cfg.Provider)),
		services.WithTimeout(cfg.RequestTimeout),
	)
	defer engine.Close()

	if interactive || vibe == "" {
		if vibe == "" {
			if vibe, err = tui.AskVibe(); err != nil {
				return err
			}
		}
		return suggestInteractive(engine, vibe)
	}

	if !engine.Submit(vibe) {
		return errors.New("nothing to search for: give me a vibe")
	}
	st, err := engine.Await(ctx)
	if err != nil {
		return err
	}
	return printState(st)
}

func suggestInteractive(engine *services.VibeEngine, vibe string) error {
	model := tui.NewModel(engine, vibe)
	defer model.Close()

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	m := final.(tui.Model)
	if m.Rejected() {
		return errors.New("nothing to search for: give me a vibe")
	}
	if m.State().Status == domain.StatusError {
		// The error card is already on screen.
		return errReported
	}
	return nil
}

func printState(st domain.State) error {
	if st.Status == domain.StatusError {
		fmt.Fprint(os.Stderr, tui.RenderError(st.Message))
		return errReported
	}
	fmt.Print(tui.RenderSongs(st.Songs))
	return nil
}
