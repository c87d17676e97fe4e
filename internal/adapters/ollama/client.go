// Package ollama provides a SongSuggester backed by a local Ollama instance.
// The songs schema is passed as the chat "format" so the model is constrained
// to emit {"songs":[...]} and nothing else.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/prompts"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.1"
)

// songsFormat mirrors the schema sent to the hosted providers.
var songsFormat = json.RawMessage(`{
  "type": "object",
  "properties": {
    "songs": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "artist": {"type": "string"},
          "reason": {"type": "string"}
        },
        "required": ["title", "artist", "reason"]
      }
    }
  },
  "required": ["songs"]
}`)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string          `json:"model"`
	Messages []chatMessage   `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   json.RawMessage `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// NewClient returns a client for the Ollama server at baseURL. Empty values
// fall back to the local default host and model.
func NewClient(baseURL, model string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) SuggestSongs(ctx context.Context, vibe string) (domain.VibeResult, error) {
	payload := chatRequest{
		Model:  c.model,
		Stream: false,
		Format: songsFormat,
		Messages: []chatMessage{
			{Role: "user", Content: prompts.VibeInstruction(vibe)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("ollama: %s", parsed.Error)
	}

	if strings.TrimSpace(parsed.Message.Content) == "" {
		return nil, fmt.Errorf("ollama: empty response")
	}

	songs, err := domain.ParseVibeResult([]byte(parsed.Message.Content))
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	return songs, nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("ollama: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: ping: unexpected status %d", resp.StatusCode)
	}
	return nil
}
