// Package bootstrap wires adapters from configuration. Both the HTTP daemon
// and the command-line tool build their services through it.
package bootstrap

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/nathankoerschner/threecoins/internal/adapters/llm/anthropic"
	"github.com/nathankoerschner/threecoins/internal/adapters/llm/openrouter"
	"github.com/nathankoerschner/threecoins/internal/adapters/store/memory"
	"github.com/nathankoerschner/threecoins/internal/adapters/store/sqlite"
	"github.com/nathankoerschner/threecoins/internal/config"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

// StdRNG delegates to math/rand/v2 (auto-seeded).
type StdRNG struct{}

func (StdRNG) Intn(n int) int { return rand.IntN(n) }

// SeededRNG replays the same tosses for the same seed.
type SeededRNG struct {
	r *rand.Rand
}

func NewSeededRNG(seed uint64) *SeededRNG {
	return &SeededRNG{r: rand.New(rand.NewPCG(seed, seed))}
}

func (s *SeededRNG) Intn(n int) int { return s.r.IntN(n) }

// Stores bundles the session and reading stores with their cleanup.
type Stores struct {
	Sessions ports.SessionStore
	Readings ports.ReadingStore
	Close    func() error
}

// OpenStores opens SQLite at dbPath, or falls back to process memory when
// dbPath is empty.
func OpenStores(dbPath string) (Stores, error) {
	if dbPath == "" {
		m := memory.New()
		return Stores{Sessions: m, Readings: m, Close: func() error { return nil }}, nil
	}
	s, err := sqlite.Open(dbPath)
	if err != nil {
		return Stores{}, fmt.Errorf("open sqlite store: %w", err)
	}
	return Stores{Sessions: s, Readings: s, Close: s.Close}, nil
}

// NewInterpreter builds the LLM client for cfg.LLMProvider. It returns nil
// for the "none" provider.
func NewInterpreter(cfg config.Config, logger *slog.Logger) (ports.Interpreter, error) {
	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	switch cfg.LLMProvider {
	case config.ProviderOpenRouter:
		return openrouter.NewClient(
			httpClient,
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		), nil
	case config.ProviderAnthropic:
		return anthropic.NewClient(
			httpClient,
			cfg.AnthropicAPIKey,
			cfg.AnthropicBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		), nil
	case config.ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
