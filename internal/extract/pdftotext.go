// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pdfword/internal/container"
)

const defaultPdftotextBin = "pdftotext"

// PdftotextBackend runs poppler's pdftotext in layout mode. It keeps word
// spacing better than the pure-Go parsers and is tried first by default.
type PdftotextBackend struct {
	bin  string
	exec container.Executor
}

// NewPdftotextBackend creates a backend that runs bin (default
// "pdftotext") through exec (default os/exec).
func NewPdftotextBackend(bin string, exec container.Executor) *PdftotextBackend {
	if bin == "" {
		bin = defaultPdftotextBin
	}
	if exec == nil {
		exec = container.OSExecutor{}
	}
	return &PdftotextBackend{bin: bin, exec: exec}
}

func (p *PdftotextBackend) Name() string { return BackendPdftotext }

// Extract runs `pdftotext -layout -enc UTF-8 <pdf> -` and splits the output
// on form feeds, which pdftotext emits between pages.
func (p *PdftotextBackend) Extract(ctx context.Context, pdfPath string) ([]string, error) {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return nil, fmt.Errorf("%s not installed: %w", p.bin, err)
	}

	var out bytes.Buffer
	args := []string{"-layout", "-enc", "UTF-8", pdfPath, "-"}
	if err := p.exec.RunPiped(ctx, p.bin, args, nil, &out); err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", p.bin, pdfPath, err)
	}

	pages := strings.Split(out.String(), "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages, nil
}
