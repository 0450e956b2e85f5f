// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfword/pkg/types"
)

var (
	// ErrMissingCredential is returned when the provider has no API key
	// (or project id, for vertex).
	ErrMissingCredential = errors.New("missing AI credential")

	// ErrUnknownProvider is returned for an unrecognized ai.provider.
	ErrUnknownProvider = errors.New("unknown AI provider")
)

// DefaultModels lists the fallback order used for each provider when
// ai.models is empty.
var DefaultModels = map[types.AIProvider][]string{
	types.ProviderGemini:    {"gemini-2.0-flash-exp", "gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"},
	types.ProviderVertex:    {"gemini-2.0-flash-exp", "gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"},
	types.ProviderOpenAI:    {"gpt-4o-mini", "gpt-4o"},
	types.ProviderAnthropic: {"claude-3-5-haiku-latest", "claude-3-5-sonnet-latest"},
}

// CredentialEnv names the environment variable holding each provider's
// credential.
var CredentialEnv = map[types.AIProvider]string{
	types.ProviderGemini:    "GEMINI_API_KEY",
	types.ProviderVertex:    "VERTEX_PROJECT",
	types.ProviderOpenAI:    "OPENAI_API_KEY",
	types.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// CredentialSecret names the .secrets file holding each provider's
// credential.
var CredentialSecret = map[types.AIProvider]string{
	types.ProviderGemini:    "gemini-api-key",
	types.ProviderVertex:    "vertex-project",
	types.ProviderOpenAI:    "openai-api-key",
	types.ProviderAnthropic: "anthropic-api-key",
}

// ParseProvider normalizes a provider name; empty means gemini.
func ParseProvider(name string) (types.AIProvider, error) {
	p := types.AIProvider(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return types.ProviderGemini, nil
	}
	if _, ok := DefaultModels[p]; !ok {
		return "", fmt.Errorf("%w %q (valid: gemini, vertex, openai, anthropic)", ErrUnknownProvider, name)
	}
	return p, nil
}

// FromConfig builds an Enhancer for the configured provider with one
// candidate per model. The credential must already be resolved into cfg.
func FromConfig(ctx context.Context, cfg types.AIConfig, log logrus.FieldLogger) (*Enhancer, error) {
	provider, err := ParseProvider(string(cfg.Provider))
	if err != nil {
		return nil, err
	}
	cfg.Provider = provider

	if strings.TrimSpace(cfg.Credential()) == "" {
		return nil, fmt.Errorf("%w for %s: pass -k, set %s, or add .secrets/%s",
			ErrMissingCredential, provider, CredentialEnv[provider], CredentialSecret[provider])
	}

	models := cfg.Models
	if len(models) == 0 {
		models = DefaultModels[provider]
	}

	var (
		completer Completer
		closer    io.Closer
	)
	switch provider {
	case types.ProviderGemini:
		g, err := NewGeminiCompleter(ctx, cfg.APIKey, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		completer, closer = g, g
	case types.ProviderVertex:
		v, err := NewVertexCompleter(ctx, cfg.Project, cfg.Region, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		completer, closer = v, v
	case types.ProviderOpenAI:
		completer = NewOpenAICompleter(cfg.APIKey, cfg.BaseURL, cfg.MaxTokens)
	case types.ProviderAnthropic:
		completer = NewAnthropicCompleter(cfg.APIKey, cfg.BaseURL, cfg.MaxTokens, cfg.RateLimitRetries,
			&http.Client{Timeout: cfg.Timeout})
	}

	candidates := make([]Candidate, 0, len(models))
	for _, m := range models {
		if m = strings.TrimSpace(m); m != "" {
			candidates = append(candidates, Candidate{Model: m, Completer: completer})
		}
	}

	e := New(candidates, log)
	e.Timeout = cfg.Timeout
	if closer != nil {
		e.closers = append(e.closers, closer)
	}
	return e, nil
}
