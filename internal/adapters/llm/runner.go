package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

// Completer sends one system/user exchange to a model and returns the text
// of its reply.
type Completer interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

// Runner implements ports.Interpreter on top of a Completer: it walks the
// model fallback chain and gives each model one chance to repair invalid JSON.
type Runner struct {
	completer      Completer
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewRunner(c Completer, model string, fallbackModels []string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		completer:      c,
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

func (r *Runner) Interpret(ctx context.Context, in ports.InterpretInput) (ports.InterpretOutput, error) {
	models := make([]string, 0, 1+len(r.fallbackModels))
	models = append(models, r.model)
	models = append(models, r.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := r.interpretWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if len(models) > 1 {
			r.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.InterpretOutput{}, lastErr
}

func (r *Runner) interpretWithModel(ctx context.Context, in ports.InterpretInput, model string) (ports.InterpretOutput, error) {
	systemPrompt := BuildSystemPrompt(in.Lang)
	userPrompt := BuildUserPrompt(in)

	content, err := r.completer.Complete(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	out, err := parseOutput(content)
	if err != nil {
		r.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = r.completer.Complete(ctx, model, systemPrompt, RetryPrompt(content))
		if err != nil {
			return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		out, err = parseOutput(content)
		if err != nil {
			return ports.InterpretOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	if out.Style == "" {
		out.Style = DefaultStyle
	}
	if out.Disclaimer == "" {
		out.Disclaimer = DefaultDisclaimer
	}
	out.Model = model

	return out, nil
}

func parseOutput(content string) (ports.InterpretOutput, error) {
	var out ports.InterpretOutput
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &out); err != nil {
		return ports.InterpretOutput{}, err
	}
	if out.Text == "" {
		return ports.InterpretOutput{}, fmt.Errorf("missing text field")
	}
	return out, nil
}
