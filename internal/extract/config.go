// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfword/internal/container"
	"github.com/pdiddy/pdfword/pkg/types"
)

// Backend names accepted in extract.backends.
const (
	BackendPdftotext  = "pdftotext"
	BackendRows       = "rows"
	BackendPlain      = "plain"
	BackendTextObj    = "textobj"
	BackendMarkitdown = "markitdown"
)

// DefaultBackends is the priority order used when none is configured,
// most spacing-faithful first.
var DefaultBackends = []string{BackendPdftotext, BackendRows, BackendPlain, BackendTextObj}

// ErrUnknownBackend is returned by FromConfig for a backend name it does
// not recognize.
var ErrUnknownBackend = errors.New("unknown extraction backend")

// FromConfig builds the backend list named in cfg. exec runs pdftotext and
// the container runtime probe; nil means os/exec.
func FromConfig(ctx context.Context, cfg types.ExtractConfig, exec container.Executor, log logrus.FieldLogger) (*Extractor, error) {
	names := cfg.Backends
	if len(names) == 0 {
		names = DefaultBackends
	}

	seen := make(map[string]bool, len(names))
	backends := make([]Backend, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case BackendPdftotext:
			backends = append(backends, NewPdftotextBackend(cfg.PdftotextBin, exec))
		case BackendRows:
			backends = append(backends, RowsBackend{})
		case BackendPlain:
			backends = append(backends, PlainBackend{})
		case BackendTextObj:
			backends = append(backends, TextObjBackend{})
		case BackendMarkitdown:
			rt, err := container.DetectRuntime(ctx, exec)
			if err != nil && log != nil {
				log.WithError(err).Warn("markitdown backend disabled")
			}
			backends = append(backends, NewMarkitdownBackend(rt))
		default:
			return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownBackend, raw,
				strings.Join([]string{BackendPdftotext, BackendRows, BackendPlain, BackendTextObj, BackendMarkitdown}, ", "))
		}
	}

	return New(backends, log), nil
}
