// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// RowsBackend extracts text with github.com/ledongthuc/pdf, rebuilding each
// line from the positioned runs of a text row.
type RowsBackend struct{}

func (RowsBackend) Name() string { return BackendRows }

func (RowsBackend) Extract(ctx context.Context, pdfPath string) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading rows of page %d: %w", i, err)
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			glyphs := make([]glyph, 0, len(row.Content))
			for _, t := range row.Content {
				glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
			}
			lines = append(lines, layoutRow(glyphs))
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}
