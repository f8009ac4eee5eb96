package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderNone       = "none"
)

type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevelRaw       string        `env:"LOG_LEVEL" envDefault:"info"`
	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"openrouter"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"qwen/qwen3-4b:free"`
	LLMFallbackRaw    string        `env:"LLM_FALLBACK_MODELS"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" envDefault:"10s"`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	AnthropicAPIKey   string        `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL  string        `env:"ANTHROPIC_BASE_URL"`
	// DBPath selects SQLite persistence; empty keeps sessions in memory.
	DBPath string `env:"DB_PATH"`

	// Derived in Load.
	LogLevel          slog.Level
	LLMFallbackModels []string
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	level, err := parseLogLevel(c.LogLevelRaw)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	c.LLMFallbackModels = parseFallbackModels(c.LLMFallbackRaw)

	switch c.LLMProvider {
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return Config{}, fmt.Errorf("OPENROUTER_API_KEY is required when LLM_PROVIDER=openrouter")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return Config{}, fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
		}
	case ProviderNone:
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}

	return c, nil
}

func parseFallbackModels(s string) []string {
	if s == "" {
		return nil
	}
	var models []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
