package openrouter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nathankoerschner/threecoins/internal/adapters/llm"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

// Client implements ports.Interpreter via the OpenRouter API, or any other
// OpenAI-compatible chat completions endpoint.
type Client struct {
	client openai.Client
	runner *llm.Runner
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	c := &Client{
		client: openai.NewClient(
			option.WithAPIKey(strings.TrimSpace(apiKey)),
			option.WithBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")+"/"),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
	c.runner = llm.NewRunner(c, model, fallbackModels, logger)
	return c
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) (ports.InterpretOutput, error) {
	return c.runner.Interpret(ctx, in)
}

// Complete sends one chat completion and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
