// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/pdfword/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownBackend extracts text by piping the PDF through the markitdown
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time. Its output is a single page.
type MarkitdownBackend struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownBackend creates a backend that runs the markitdown image on
// rt. A nil runtime is allowed; Extract then fails so the next backend is
// tried.
func NewMarkitdownBackend(rt container.Runtime) *MarkitdownBackend {
	return &MarkitdownBackend{runtime: rt, image: imageMarkitdown}
}

func (m *MarkitdownBackend) Name() string { return BackendMarkitdown }

// Extract reads the PDF at pdfPath, pipes it through the markitdown
// container, and returns the resulting text.
func (m *MarkitdownBackend) Extract(ctx context.Context, pdfPath string) ([]string, error) {
	if m.runtime == nil {
		return nil, errors.New("no container runtime available")
	}
	if err := m.runtime.ImageExists(ctx, m.image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", m.runtime.Name(), err)
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with markitdown: %w", pdfPath, err)
	}
	return []string{out.String()}, nil
}
