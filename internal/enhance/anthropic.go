// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/pdfword/internal/httputil"
)

const defaultAnthropicTokens = 8192

// AnthropicCompleter calls the Anthropic Messages API.
type AnthropicCompleter struct {
	client    anthropic.Client
	maxTokens int64
}

// NewAnthropicCompleter creates a completer authenticated with apiKey. The
// SDK's own retries are disabled so each model is tried once; HTTP 429 is
// retried rateLimitRetries extra times by the transport.
func NewAnthropicCompleter(apiKey, baseURL string, maxTokens, rateLimitRetries int, client *http.Client) *AnthropicCompleter {
	if client == nil {
		client = &http.Client{}
	}
	hc := *client
	hc.Transport = &httputil.RetryTransport{Base: client.Transport, MaxRetries: rateLimitRetries}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&hc),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimSuffix(baseURL, "/")+"/"))
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicTokens
	}
	return &AnthropicCompleter{client: anthropic.NewClient(opts...), maxTokens: int64(maxTokens)}
}

// Complete sends prompt to model and returns the concatenated text blocks.
func (a *AnthropicCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	var syntaxErr *json.SyntaxError
	switch {
	case err == nil:
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "", fmt.Errorf("decoding Anthropic response: %w: %v", ErrMalformedResponse, err)
	default:
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	if msg.StopReason == "refusal" {
		return "", ErrRefusal
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
