// Package config loads runtime settings from .env, the environment and an
// optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	Provider string `mapstructure:"VIBE_PROVIDER"`

	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	LegacyAPIKey  string `mapstructure:"API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`
	GeminiBaseURL string `mapstructure:"GEMINI_BASE_URL"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`

	OllamaHost  string `mapstructure:"OLLAMA_HOST"`
	OllamaModel string `mapstructure:"OLLAMA_MODEL"`

	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	DatabasePath   string        `mapstructure:"DATABASE_PATH"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`

	// Idle sessions are closed after SessionTTL. Zero keeps them forever.
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	// Ledger writer pool
	Workers   int `mapstructure:"WORKERS"`
	QueueSize int `mapstructure:"QUEUE_SIZE"`
}

var defaults = map[string]any{
	"VIBE_PROVIDER":   ProviderGemini,
	"GEMINI_API_KEY":  "",
	"API_KEY":         "",
	"GEMINI_MODEL":    "gemini-2.5-flash",
	"GEMINI_BASE_URL": "",
	"OPENAI_API_KEY":  "",
	"OPENAI_MODEL":    "gpt-4o-mini",
	"OPENAI_BASE_URL": "",
	"OLLAMA_HOST":     "http://localhost:11434",
	"OLLAMA_MODEL":    "llama3.1",
	"SERVER_ADDRESS":  ":8080",
	"DATABASE_PATH":   "vibefinder.db",
	"REQUEST_TIMEOUT": "30s",
	"LOG_LEVEL":       "info",
	"SESSION_TTL":     "30m",
	"WORKERS":         2,
	"QUEUE_SIZE":      100,
}

// Load reads .env (if present), then config.yaml in path (if present), then
// the environment. Later sources win.
func Load(path string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.AddConfigPath(path)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = cfg.LegacyAPIKey
	}
	return cfg, nil
}

// Validate reports settings that would make the selected provider unusable.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("config: GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return errors.New("config: OLLAMA_HOST is required for the ollama provider")
		}
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}

	if c.RequestTimeout < 0 {
		return errors.New("config: REQUEST_TIMEOUT must not be negative")
	}
	if c.SessionTTL < 0 {
		return errors.New("config: SESSION_TTL must not be negative")
	}
	return nil
}
