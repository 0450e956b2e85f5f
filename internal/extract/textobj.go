// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"os"

	"rsc.io/pdf"
)

// errNoGlyphWidths is returned when a page's font lacks glyph widths, so
// text positions cannot separate words.
var errNoGlyphWidths = errors.New("text positions unavailable: font has no glyph widths")

// TextObjBackend extracts text with rsc.io/pdf, rebuilding lines from the
// positions of the text objects in each page's content stream.
type TextObjBackend struct{}

func (TextObjBackend) Name() string { return BackendTextObj }

func (TextObjBackend) Extract(ctx context.Context, pdfPath string) ([]string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", pdfPath, err)
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing PDF %s: %w", pdfPath, err)
	}

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
		texts := p.Content().Text
		glyphs := make([]glyph, 0, len(texts))
		advances := false
		for _, t := range texts {
			glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
			if t.W > 0 {
				advances = true
			}
		}
		// Without widths every glyph sits at the line origin and the
		// spaces between words are lost.
		if len(glyphs) > 1 && !advances {
			return nil, fmt.Errorf("page %d of %s: %w", i, pdfPath, errNoGlyphWidths)
		}
		pages = append(pages, layoutLines(glyphs))
	}
	return pages, nil
}
