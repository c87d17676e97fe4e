// Package openai provides a SongSuggester backed by any OpenAI-compatible
// chat completions endpoint that supports strict JSON schema output.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/ewilliams-labs/vibefinder/internal/core/domain"
	"github.com/ewilliams-labs/vibefinder/internal/core/prompts"
)

const DefaultModel = openai.GPT4oMini

var ErrEmptyResponse = errors.New("openai: empty response")

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: openai.NewClientWithConfig(config), model: model}, nil
}

var songsSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"songs": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"title":  {Type: jsonschema.String},
					"artist": {Type: jsonschema.String},
					"reason": {Type: jsonschema.String},
				},
				Required:             []string{"title", "artist", "reason"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"songs"},
	AdditionalProperties: false,
}

func (c *Client) SuggestSongs(ctx context.Context, vibe string) (domain.VibeResult, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompts.VibeInstruction(vibe)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "vibe_songs",
				Schema: songsSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	songs, err := domain.ParseVibeResult([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return songs, nil
}
