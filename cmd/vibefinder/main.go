// Command vibefinder suggests songs for a free-text vibe, either from the
// terminal or as an HTTP service.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/vibefinder/internal/config"
	"github.com/ewilliams-labs/vibefinder/internal/logging"
)

var Version = "dev"

// errReported exits non-zero without printing anything further.
var errReported = errors.New("already reported")

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "vibefinder",
	Version:       Version,
	Short:         "vibefinder - songs for whatever mood you are in",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")

	rootCmd.AddCommand(serveCmd, suggestCmd, embedCmd)
}

// setup loads and validates configuration and builds the logger.
func setup() (config.Config, *log.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return config.Config{}, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
