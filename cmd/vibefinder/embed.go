package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

var embedCmd = &cobra.Command{
	Use:   "embed <url>",
	Short: "Print the embeddable player URL for a Spotify or YouTube share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := domain.ResolveEmbed(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\theight=%d\n", e.Platform, e.URL, e.Height)
		return nil
	},
}
