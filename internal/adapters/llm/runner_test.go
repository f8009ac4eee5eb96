package llm_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/nathankoerschner/threecoins/internal/adapters/llm"
	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

type reply struct {
	content string
	err     error
}

// scriptedCompleter replays replies per model in order.
type scriptedCompleter struct {
	replies map[string][]reply
	calls   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, model, _, _ string) (string, error) {
	s.calls = append(s.calls, model)
	rs := s.replies[model]
	if len(rs) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := rs[0]
	s.replies[model] = rs[1:]
	return r.content, r.err
}

func testInput() ports.InterpretInput {
	return ports.InterpretInput{
		Question:      "What lies ahead?",
		Primary:       domain.HexagramSummary{Number: 1, EnglishName: "The Creative", ChineseName: "乾"},
		Transformed:   &domain.HexagramSummary{Number: 2, EnglishName: "The Receptive", ChineseName: "坤"},
		ChangingLines: []int{1, 2, 3, 4, 5, 6},
	}
}

func TestRunner_Success_FillsDefaults(t *testing.T) {
	c := &scriptedCompleter{replies: map[string][]reply{
		"m1": {{content: `{"text":"A reading."}`}},
	}}
	r := llm.NewRunner(c, "m1", nil, slog.Default())

	out, err := r.Interpret(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "A reading." || out.Style != llm.DefaultStyle || out.Disclaimer != llm.DefaultDisclaimer {
		t.Errorf("unexpected output %+v", out)
	}
	if out.Model != "m1" {
		t.Errorf("expected model m1, got %s", out.Model)
	}
}

func TestRunner_BadJSON_RetrySuccess(t *testing.T) {
	c := &scriptedCompleter{replies: map[string][]reply{
		"m1": {{content: "not json"}, {content: "```json\n{\"text\":\"Fixed.\"}\n```"}},
	}}
	r := llm.NewRunner(c, "m1", nil, slog.Default())

	out, err := r.Interpret(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "Fixed." {
		t.Errorf("unexpected text %q", out.Text)
	}
	if len(c.calls) != 2 {
		t.Errorf("expected 2 calls, got %d", len(c.calls))
	}
}

func TestRunner_BadJSON_RetryFailure(t *testing.T) {
	c := &scriptedCompleter{replies: map[string][]reply{
		"m1": {{content: "not json"}, {content: "still not json"}},
	}}
	r := llm.NewRunner(c, "m1", nil, slog.Default())

	_, err := r.Interpret(context.Background(), testInput())
	if !errors.Is(err, domain.ErrInvalidLLMJSON) {
		t.Errorf("expected ErrInvalidLLMJSON, got %v", err)
	}
}

func TestRunner_FallbackModel(t *testing.T) {
	c := &scriptedCompleter{replies: map[string][]reply{
		"m1": {{err: errors.New("rate limited")}},
		"m2": {{content: `{"text":"From fallback.","style":"poetic"}`}},
	}}
	r := llm.NewRunner(c, "m1", []string{"m2"}, slog.Default())

	out, err := r.Interpret(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Model != "m2" || out.Style != "poetic" {
		t.Errorf("unexpected output %+v", out)
	}
}

func TestRunner_AllModelsFail(t *testing.T) {
	c := &scriptedCompleter{replies: map[string][]reply{
		"m1": {{err: errors.New("boom")}},
		"m2": {{err: errors.New("boom")}},
	}}
	r := llm.NewRunner(c, "m1", []string{"m2"}, slog.Default())

	_, err := r.Interpret(context.Background(), testInput())
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Errorf("expected ErrUpstreamLLM, got %v", err)
	}
	if len(c.calls) != 2 {
		t.Errorf("expected both models tried, got %v", c.calls)
	}
}
