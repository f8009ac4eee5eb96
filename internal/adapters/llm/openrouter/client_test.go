package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nathankoerschner/threecoins/internal/adapters/llm/openrouter"
	"github.com/nathankoerschner/threecoins/internal/domain"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

func testInput() ports.InterpretInput {
	return ports.InterpretInput{
		Question:      "What lies ahead?",
		Primary:       domain.HexagramSummary{Number: 1, EnglishName: "The Creative", ChineseName: "乾"},
		Transformed:   &domain.HexagramSummary{Number: 2, EnglishName: "The Receptive", ChineseName: "坤"},
		ChangingLines: []int{1, 2, 3, 4, 5, 6},
		Values:        []int{9, 9, 9, 9, 9, 9},
	}
}

func writeCompletion(w http.ResponseWriter, model, content string) {
	resp := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   model,
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestClient_Interpret_Success(t *testing.T) {
	llmResp := ports.InterpretOutput{
		Text:       "A thoughtful interpretation.",
		Style:      "neutral",
		Disclaimer: "For reflection/entertainment; not medical/legal/financial advice.",
	}
	llmJSON, _ := json.Marshal(llmResp)

	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		writeCompletion(w, "test-model", string(llmJSON))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "test-key", srv.URL, "test-model", nil, slog.Default())

	out, err := client.Interpret(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "A thoughtful interpretation." {
		t.Errorf("unexpected text: %s", out.Text)
	}
	if out.Model != "test-model" {
		t.Errorf("unexpected model: %s", out.Model)
	}

	if gotReq["model"] != "test-model" {
		t.Errorf("request model: %v", gotReq["model"])
	}
	msgs, _ := gotReq["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	user, _ := msgs[1].(map[string]any)
	if content, _ := user["content"].(string); !strings.Contains(content, "Primary hexagram: 1 The Creative (乾)") {
		t.Errorf("user prompt missing primary hexagram: %v", user["content"])
	}
}

func TestClient_Interpret_BadJSON_Retry_Success(t *testing.T) {
	callCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callCount++
		content := `{"text":"Retried interpretation."}`
		if callCount == 1 {
			content = "this is not json at all"
		}
		writeCompletion(w, "model", content)
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", nil, slog.Default())

	out, err := client.Interpret(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls (original + retry), got %d", callCount)
	}
	if out.Text != "Retried interpretation." {
		t.Errorf("unexpected text: %s", out.Text)
	}
}

func TestClient_Interpret_BadJSON_Retry_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeCompletion(w, "model", "still not json")
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", nil, slog.Default())

	_, err := client.Interpret(context.Background(), testInput())
	if !errors.Is(err, domain.ErrInvalidLLMJSON) {
		t.Fatalf("expected ErrInvalidLLMJSON, got %v", err)
	}
}

func TestClient_Interpret_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", nil, slog.Default())

	_, err := client.Interpret(context.Background(), testInput())
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}

func TestClient_Interpret_FallbackModel(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		if req.Model == "primary" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
			return
		}
		writeCompletion(w, req.Model, `{"text":"Fallback answered."}`)
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "primary", []string{"backup"}, slog.Default())

	out, err := client.Interpret(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Model != "backup" {
		t.Errorf("expected backup model, got %s", out.Model)
	}
	if len(models) != 2 || models[0] != "primary" || models[1] != "backup" {
		t.Errorf("unexpected model order %v", models)
	}
}
