package anthropic

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nathankoerschner/threecoins/internal/adapters/llm"
	"github.com/nathankoerschner/threecoins/internal/ports"
)

const maxOutputTokens = 1024

// Client implements ports.Interpreter via the Anthropic Messages API.
type Client struct {
	client sdk.Client
	runner *llm.Runner
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if u := strings.TrimSpace(baseURL); u != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(u, "/")+"/"))
	}
	c := &Client{client: sdk.NewClient(opts...)}
	c.runner = llm.NewRunner(c, model, fallbackModels, logger)
	return c
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) (ports.InterpretOutput, error) {
	return c.runner.Interpret(ctx, in)
}

// Complete sends one message and concatenates the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: maxOutputTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text content in response")
	}
	return strings.TrimSpace(b.String()), nil
}
