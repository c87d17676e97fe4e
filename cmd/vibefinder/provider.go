package main

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/vibefinder/internal/adapters/gemini"
	"github.com/ewilliams-labs/vibefinder/internal/adapters/ollama"
	"github.com/ewilliams-labs/vibefinder/internal/adapters/openai"
	"github.com/ewilliams-labs/vibefinder/internal/adapters/rest"
	"github.com/ewilliams-labs/vibefinder/internal/config"
	"github.com/ewilliams-labs/vibefinder/internal/core/ports"
)

// newSuggester builds the configured provider. The ready check is nil for
// hosted providers, which have no cheap liveness probe.
func newSuggester(ctx context.Context, cfg config.Config) (ports.SongSuggester, rest.ReadyCheck, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case config.ProviderOpenAI:
		c, err := openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case config.ProviderOllama:
		c := ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel)
		return c, c.Ping, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
