package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

func TestAdapter_Summary(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []domain.Outcome
		want     domain.OutcomeSummary
	}{
		{
			name: "empty log",
			want: domain.OutcomeSummary{},
		},
		{
			name: "mixed outcomes",
			outcomes: []domain.Outcome{
				{SessionID: "s1", Status: domain.StatusSuccess, SongCount: 5, Duration: 100 * time.Millisecond},
				{SessionID: "s1", Status: domain.StatusSuccess, SongCount: 3, Duration: 300 * time.Millisecond},
				{SessionID: "s2", Status: domain.StatusError, Duration: 200 * time.Millisecond},
			},
			want: domain.OutcomeSummary{
				Total:             3,
				Successes:         2,
				Failures:          1,
				AverageSongs:      4,
				AverageDurationMs: 200,
			},
		},
		{
			name: "empty success counts toward songs average",
			outcomes: []domain.Outcome{
				{Status: domain.StatusSuccess, SongCount: 0, Duration: 10 * time.Millisecond},
				{Status: domain.StatusSuccess, SongCount: 2, Duration: 30 * time.Millisecond},
			},
			want: domain.OutcomeSummary{
				Total:             2,
				Successes:         2,
				AverageSongs:      1,
				AverageDurationMs: 20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAdapter(":memory:")
			if err != nil {
				t.Fatalf("new adapter: %v", err)
			}
			defer a.Close()

			ctx := context.Background()
			for _, o := range tt.outcomes {
				o.At = time.Now()
				if err := a.Record(ctx, o); err != nil {
					t.Fatalf("record: %v", err)
				}
			}

			got, err := a.Summary(ctx)
			if err != nil {
				t.Fatalf("summary: %v", err)
			}
			if got != tt.want {
				t.Fatalf("summary: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAdapter_RecordRejectsUnsettled(t *testing.T) {
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	defer a.Close()

	for _, status := range []domain.Status{domain.StatusIdle, domain.StatusLoading} {
		if err := a.Record(context.Background(), domain.Outcome{Status: status, At: time.Now()}); err == nil {
			t.Fatalf("expected %s outcome to be rejected", status)
		}
	}
}

func TestAdapter_MigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	first, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Record(context.Background(), domain.Outcome{Status: domain.StatusError, At: time.Now()}); err != nil {
		t.Fatalf("record: %v", err)
	}
	first.Close()

	second, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	if err := second.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	got, err := second.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.Total != 1 || got.Failures != 1 {
		t.Fatalf("expected persisted failure, got %+v", got)
	}
}

func TestAdapter_RecordStoresSessionID(t *testing.T) {
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.Record(ctx, domain.Outcome{SessionID: "abc", Status: domain.StatusSuccess, SongCount: 2, At: time.Now()}); err != nil {
		t.Fatalf("record: %v", err)
	}

	var sessionID, status string
	var songs int
	row := a.db.QueryRowContext(ctx, "SELECT session_id, status, song_count FROM vibe_requests")
	if err := row.Scan(&sessionID, &status, &songs); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sessionID != "abc" || status != "success" || songs != 2 {
		t.Fatalf("unexpected row %q %q %d", sessionID, status, songs)
	}
}
