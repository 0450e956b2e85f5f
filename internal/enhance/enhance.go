// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enhance sends extracted text to a hosted language model for
// cleanup. Models are tried in order; when none succeeds the input text is
// passed through unchanged.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfword/pkg/types"
)

// Completer sends one prompt to one model and returns the raw response
// text. Each provider (Gemini, Vertex AI, OpenAI, Anthropic) implements it.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Candidate pairs a model identifier with the Completer that serves it.
type Candidate struct {
	Model     string
	Completer Completer
}

// Enhancer tries its candidates in order until one returns usable text.
type Enhancer struct {
	candidates []Candidate
	log        logrus.FieldLogger
	closers    []io.Closer

	// Timeout bounds each model request. Zero leaves the provider default.
	Timeout time.Duration
}

// New creates an Enhancer over candidates in fallback order. A nil logger
// discards log output.
func New(candidates []Candidate, log logrus.FieldLogger) *Enhancer {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Enhancer{candidates: candidates, log: log}
}

// Models returns the model identifiers in the order they are tried.
func (e *Enhancer) Models() []string {
	models := make([]string, len(e.candidates))
	for i, c := range e.candidates {
		models[i] = c.Model
	}
	return models
}

// Close releases provider clients opened by FromConfig.
func (e *Enhancer) Close() error {
	var errs []error
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Enhance returns the cleaned-up text from the first model that answers
// with non-empty, non-refusal content. Each model is tried once. When all
// fail, or text is blank, the result carries text verbatim with Skipped
// set. Enhance never returns an error; failures are in Attempts.
func (e *Enhancer) Enhance(ctx context.Context, text string) types.Enhancement {
	result := types.Enhancement{Text: text, Skipped: true}

	if strings.TrimSpace(text) == "" {
		e.log.Debug("empty text, skipping enhancement")
		return result
	}

	prompt, err := renderPrompt(text)
	if err != nil {
		e.log.WithError(err).Warn("rendering prompt failed, skipping enhancement")
		return result
	}

	for i, c := range e.candidates {
		log := e.log.WithField("model", c.Model)

		out, err := e.complete(ctx, c, text, prompt)
		if err != nil {
			log.WithError(err).WithField("kind", Classify(err)).Warn("model failed")
			result.Attempts = append(result.Attempts, types.Attempt{
				Name: c.Model,
				Err:  fmt.Sprintf("%s: %v", Classify(err), err),
			})
			if i < len(e.candidates)-1 {
				log.Info("falling back to next model")
			}
			continue
		}

		log.WithField("chars", len([]rune(out))).Info("text enhanced")
		result.Attempts = append(result.Attempts, types.Attempt{Name: c.Model})
		result.Text = out
		result.Model = c.Model
		result.Skipped = false
		return result
	}

	e.log.Warn("all models failed, keeping extracted text")
	return result
}

// complete runs one candidate and validates its response against text.
func (e *Enhancer) complete(ctx context.Context, c Candidate, text, prompt string) (string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	resp, err := c.Completer.Complete(ctx, c.Model, prompt)
	if err != nil {
		return "", err
	}

	out := cleanResponse(resp)
	switch {
	case out == "":
		return "", ErrEmptyResponse
	case isRefusal(out, text):
		return "", ErrRefusal
	}
	return out, nil
}
