// Package sqlite provides a SQLite-backed request log. Only outcomes are
// stored: no prompt text and no suggested songs ever reach the database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

// Adapter implements ports.RequestLog for SQLite
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers, which SQLite does anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *Adapter) Record(ctx context.Context, o domain.Outcome) error {
	if o.Status != domain.StatusSuccess && o.Status != domain.StatusError {
		return fmt.Errorf("refusing to record unsettled status %s", o.Status)
	}

	query := `
		INSERT INTO vibe_requests (session_id, status, song_count, duration_ms, requested_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(
		ctx,
		query,
		o.SessionID,
		o.Status.String(),
		o.SongCount,
		o.Duration.Milliseconds(),
		o.At.UTC(),
	); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// Summary aggregates every recorded outcome. AverageSongs only counts
// successful requests since failures never carry songs.
func (a *Adapter) Summary(ctx context.Context) (domain.OutcomeSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(CASE WHEN status = ? THEN song_count END), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM vibe_requests
	`

	var s domain.OutcomeSummary
	if err := a.db.QueryRowContext(
		ctx,
		query,
		domain.StatusSuccess.String(),
		domain.StatusError.String(),
		domain.StatusSuccess.String(),
	).Scan(
		&s.Total,
		&s.Successes,
		&s.Failures,
		&s.AverageSongs,
		&s.AverageDurationMs,
	); err != nil {
		return domain.OutcomeSummary{}, fmt.Errorf("failed to load request summary: %w", err)
	}
	return s, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS vibe_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		status TEXT NOT NULL,
		song_count INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		requested_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_vibe_requests_status ON vibe_requests(status);
	`
	_, err := a.db.Exec(query)
	return err
}
