// Package gemini provides a SongSuggester backed by the Gemini API. The
// request carries a response schema so the model answers with the songs
// object directly.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/prompts"
)

const DefaultModel = "gemini-2.5-flash"

var ErrEmptyResponse = errors.New("gemini: empty response")

type Client struct {
	client *genai.Client
	model  string
}

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint. Empty uses the public endpoint.
	BaseURL string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	genClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	return &Client{client: genClient, model: model}, nil
}

func songsConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"songs": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":  {Type: genai.TypeString},
							"artist": {Type: genai.TypeString},
							"reason": {Type: genai.TypeString},
						},
						Required:         []string{"title", "artist", "reason"},
						PropertyOrdering: []string{"title", "artist", "reason"},
					},
				},
			},
			Required: []string{"songs"},
		},
	}
}

func (c *Client) SuggestSongs(ctx context.Context, vibe string) (domain.VibeResult, error) {
	res, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompts.VibeInstruction(vibe)),
		songsConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	// Blocked prompts come back without candidates.
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	songs, err := domain.ParseVibeResult([]byte(res.Text()))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return songs, nil
}
