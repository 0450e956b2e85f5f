// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

const defaultVertexRegion = "us-central1"

// VertexCompleter calls Gemini models through Vertex AI, authenticated
// with application default credentials for a GCP project.
type VertexCompleter struct {
	client    *genai.Client
	maxTokens int32
}

// NewVertexCompleter opens a Vertex AI client for project in region
// (default us-central1). Callers must Close it.
func NewVertexCompleter(ctx context.Context, project, region string, maxTokens int) (*VertexCompleter, error) {
	if project == "" {
		return nil, errors.New("vertex: project id is required")
	}
	if region == "" {
		region = defaultVertexRegion
	}
	client, err := genai.NewClient(ctx, project, region)
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}
	return &VertexCompleter{client: client, maxTokens: int32(maxTokens)}, nil
}

func (v *VertexCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	m := v.client.GenerativeModel(model)
	if v.maxTokens > 0 {
		m.SetMaxOutputTokens(v.maxTokens)
	}
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("calling Vertex AI: %w", err)
	}
	return vertexText(resp)
}

func (v *VertexCompleter) Close() error {
	return v.client.Close()
}

// vertexText concatenates the text parts of the first candidate.
func vertexText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: blocked by safety filters", ErrRefusal)
	}
	if cand.Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String(), nil
}
