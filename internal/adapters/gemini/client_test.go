package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
)

func candidateBody(t *testing.T, text string) string {
	t.Helper()
	body := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestClient_SuggestSongs(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		responseBody  string
		wantErr       bool
		wantMalformed bool
		wantSongs     domain.VibeResult
	}{
		{
			name:         "Success",
			status:       http.StatusOK,
			responseBody: candidateBody(t, `{"songs":[{"title":"Nightcall","artist":"Kavinsky","reason":"synthwave driving mood"}]}`),
			wantSongs:    domain.VibeResult{{Title: "Nightcall", Artist: "Kavinsky", Reason: "synthwave driving mood"}},
		},
		{
			name:         "Songs field absent",
			status:       http.StatusOK,
			responseBody: candidateBody(t, `{}`),
			wantSongs:    domain.VibeResult{},
		},
		{
			name:          "Malformed payload",
			status:        http.StatusOK,
			responseBody:  candidateBody(t, `{"songs":[{"title":"x"}]}`),
			wantErr:       true,
			wantMalformed: true,
		},
		{
			name:          "Not JSON",
			status:        http.StatusOK,
			responseBody:  candidateBody(t, `here are some songs`),
			wantErr:       true,
			wantMalformed: true,
		},
		{
			name:         "No candidates",
			status:       http.StatusOK,
			responseBody: `{"candidates":[]}`,
			wantErr:      true,
		},
		{
			name:         "Server error",
			status:       http.StatusInternalServerError,
			responseBody: `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotBody string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				b, _ := io.ReadAll(r.Body)
				gotBody = string(b)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client, err := NewClient(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("new client: %v", err)
			}

			songs, err := client.SuggestSongs(context.Background(), "late night drive")
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantMalformed && !errors.Is(err, domain.ErrMalformedResult) {
				t.Fatalf("expected ErrMalformedResult, got %v", err)
			}

			if !strings.HasSuffix(gotPath, "/models/"+DefaultModel+":generateContent") {
				t.Fatalf("unexpected path %s", gotPath)
			}
			if !strings.Contains(gotBody, "application/json") || !strings.Contains(gotBody, "late night drive") {
				t.Fatalf("request missing schema config or vibe: %s", gotBody)
			}

			if tt.wantErr {
				return
			}
			if len(songs) != len(tt.wantSongs) {
				t.Fatalf("expected %d songs, got %+v", len(tt.wantSongs), songs)
			}
			for i := range songs {
				if songs[i] != tt.wantSongs[i] {
					t.Fatalf("song %d: got %+v, want %+v", i, songs[i], tt.wantSongs[i])
				}
			}
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}
