package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/vibefinder/internal/adapters/rest"
	"github.com/ewilliams-labs/vibefinder/internal/adapters/sqlite"
	"github.com/ewilliams-labs/vibefinder/internal/core/services"
	"github.com/ewilliams-labs/vibefinder/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	// 1. Configuration
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Driven adapters
	ledger, err := sqlite.NewAdapter(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize request log: %w", err)
	}
	defer ledger.Close()

	suggester, providerReady, err := newSuggester(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s provider: %w", cfg.Provider, err)
	}

	pool := worker.NewPool(ledger, cfg.QueueSize, logger.With("component", "ledger"))
	pool.Start(cfg.Workers)
	defer pool.Stop()

	// 3. Core
	sessions := services.NewSessionManager(
		suggester,
		pool,
		logger.With("provider", cfg.Provider),
		services.WithTimeout(cfg.RequestTimeout),
	)
	defer sessions.Shutdown()

	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	sessions.StartReaper(reaperCtx, cfg.SessionTTL, time.Minute)

	// 4. Driving adapter
	opts := []rest.Option{
		rest.WithLogger(logger),
		rest.WithLedger(ledger),
		rest.WithReadyCheck("ledger", ledger.Ping),
	}
	if providerReady != nil {
		opts = append(opts, rest.WithReadyCheck(cfg.Provider, providerReady))
	}
	handler := rest.NewHandler(sessions, opts...)

	// 5. Start the server
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()
	logger.Info("vibefinder API listening", "addr", cfg.ServerAddress, "provider", cfg.Provider)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		return err
	case <-sigCtx.Done():
		logger.Info("shutting down server")
		// Close sessions first so open event streams end and in-flight
		// requests are cancelled before Shutdown waits on connections.
		sessions.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}
	return nil
}
