// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls plain text out of PDF files. An Extractor walks an
// ordered list of backends and keeps the output of the first one that yields
// non-empty text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfword/pkg/types"
)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n\n"

// ErrExhausted is matched by the error Extract returns when no backend
// produced text.
var ErrExhausted = errors.New("all extraction backends failed")

// Backend extracts text from one PDF. Different libraries and tools
// (pdftotext, ledongthuc/pdf, dslipak/pdf, rsc.io/pdf, markitdown)
// implement this interface.
type Backend interface {
	// Name identifies the backend in logs, attempt lists, and configuration.
	Name() string

	// Extract returns the text of each page in order.
	Extract(ctx context.Context, pdfPath string) ([]string, error)
}

// ExhaustedError reports every backend that was tried for a file and why
// it failed.
type ExhaustedError struct {
	Path     string
	Attempts []types.Attempt
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no text extracted from %s", e.Path)
	if len(e.Attempts) == 0 {
		b.WriteString(": no backends configured")
		return b.String()
	}
	for i, a := range e.Attempts {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", a.Name, a.Err)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrExhausted) true for an *ExhaustedError.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// pageCountFile reads the page count from the PDF structure. Package-level
// var for test substitution.
var pageCountFile = api.PageCountFile

// pdfcpu otherwise installs config.yml and certificates under the user's
// config directory on first use.
func init() {
	api.DisableConfigDir()
}

// Extractor tries its backends in order until one yields text.
type Extractor struct {
	backends []Backend
	log      logrus.FieldLogger

	// Filter post-processes the extracted text, typically the spacing
	// normalizer. Nil leaves the text unchanged.
	Filter func(string) string
}

// New creates an Extractor over backends in priority order. A nil logger
// discards log output.
func New(backends []Backend, log logrus.FieldLogger) *Extractor {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Extractor{backends: backends, log: log}
}

// Backends returns the backend names in the order they are tried.
func (e *Extractor) Backends() []string {
	names := make([]string, len(e.backends))
	for i, b := range e.backends {
		names[i] = b.Name()
	}
	return names
}

// Extract runs the backends in order and returns the first non-empty
// result, filtered. When every backend fails or yields only whitespace it
// returns an *ExhaustedError.
func (e *Extractor) Extract(ctx context.Context, pdfPath string) (*types.Extraction, error) {
	var attempts []types.Attempt

	for _, b := range e.backends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log := e.log.WithFields(logrus.Fields{"backend": b.Name(), "pdf": pdfPath})
		log.Debug("trying extraction backend")

		pages, err := safeExtract(ctx, b, pdfPath)
		if err == nil && strings.TrimSpace(strings.Join(pages, "")) == "" {
			err = errors.New("empty output")
		}
		if err != nil {
			log.WithError(err).Debug("extraction backend failed")
			attempts = append(attempts, types.Attempt{Name: b.Name(), Err: err.Error()})
			continue
		}
		attempts = append(attempts, types.Attempt{Name: b.Name()})

		raw := strings.Join(trimPages(pages), pageSeparator)
		text := raw
		if e.Filter != nil {
			text = e.Filter(raw)
		}

		n, err := pageCountFile(pdfPath)
		if err != nil || n <= 0 {
			n = len(pages)
		}

		log.WithFields(logrus.Fields{
			"pages": n,
			"chars": utf8.RuneCountInString(text),
		}).Info("extracted text")

		return &types.Extraction{
			Backend:  b.Name(),
			Text:     text,
			RawChars: utf8.RuneCountInString(raw),
			Pages:    n,
			Attempts: attempts,
		}, nil
	}

	return nil, &ExhaustedError{Path: pdfPath, Attempts: attempts}
}

// safeExtract runs one backend and turns a panic inside a PDF library into
// an error, so a malformed file moves on to the next backend.
func safeExtract(ctx context.Context, b Backend, pdfPath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%s panicked: %v", b.Name(), r)
		}
	}()
	return b.Extract(ctx, pdfPath)
}

// trimPages drops trailing whitespace from each page and removes empty
// pages so the separator never stacks up.
func trimPages(pages []string) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		p = strings.TrimRight(p, " \t\r\n\f")
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
