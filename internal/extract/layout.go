// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"strings"
)

// glyph is one positioned text run as reported by a PDF content stream.
// Both ledongthuc/pdf and rsc.io/pdf expose runs with this shape.
type glyph struct {
	X, Y, W  float64
	FontSize float64
	S        string
}

const (
	// wordGapRatio is the horizontal gap, relative to the font size, above
	// which two runs on one line are separated by a space.
	wordGapRatio = 0.15

	// lineShiftRatio is the vertical shift, relative to the font size,
	// that starts a new line.
	lineShiftRatio = 0.5
)

// layoutLines rebuilds text lines from runs in content-stream order. A new
// line starts when the baseline moves; a space is inserted where the gap to
// the previous run is wide enough to be a word break.
func layoutLines(glyphs []glyph) string {
	var b strings.Builder
	var prev *glyph
	for i := range glyphs {
		g := &glyphs[i]
		if g.S == "" {
			continue
		}
		if prev != nil {
			size := math.Max(math.Max(g.FontSize, prev.FontSize), 1)
			switch {
			case math.Abs(g.Y-prev.Y) > size*lineShiftRatio:
				b.WriteByte('\n')
			case g.X-(prev.X+prev.W) > size*wordGapRatio && !endsSpace(prev.S) && !startsSpace(g.S):
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		prev = g
	}
	return b.String()
}

// layoutRow joins runs that are already known to share a line.
func layoutRow(glyphs []glyph) string {
	for i := range glyphs {
		if i > 0 {
			glyphs[i].Y = glyphs[0].Y
		}
	}
	return layoutLines(glyphs)
}

func endsSpace(s string) bool   { return strings.HasSuffix(s, " ") }
func startsSpace(s string) bool { return strings.HasPrefix(s, " ") }
