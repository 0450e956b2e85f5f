// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutLines(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []glyph
		want   string
	}{
		{
			name:   "empty",
			glyphs: nil,
			want:   "",
		},
		{
			name: "adjacent runs join",
			glyphs: []glyph{
				{X: 0, Y: 700, W: 30, FontSize: 12, S: "Hel"},
				{X: 30, Y: 700, W: 20, FontSize: 12, S: "lo"},
			},
			want: "Hello",
		},
		{
			name: "gap becomes a space",
			glyphs: []glyph{
				{X: 0, Y: 700, W: 30, FontSize: 12, S: "Hello"},
				{X: 36, Y: 700, W: 30, FontSize: 12, S: "World"},
			},
			want: "Hello World",
		},
		{
			name: "explicit space is not doubled",
			glyphs: []glyph{
				{X: 0, Y: 700, W: 30, FontSize: 12, S: "Hello "},
				{X: 40, Y: 700, W: 30, FontSize: 12, S: "World"},
			},
			want: "Hello World",
		},
		{
			name: "baseline change starts a line",
			glyphs: []glyph{
				{X: 0, Y: 700, W: 30, FontSize: 12, S: "first"},
				{X: 0, Y: 684, W: 30, FontSize: 12, S: "second"},
			},
			want: "first\nsecond",
		},
		{
			name: "small baseline jitter stays on the line",
			glyphs: []glyph{
				{X: 0, Y: 700, W: 10, FontSize: 12, S: "x"},
				{X: 10, Y: 702, W: 10, FontSize: 8, S: "2"},
			},
			want: "x2",
		},
		{
			name: "empty runs skipped",
			glyphs: []glyph{
				{X: 0, Y: 700, W: 10, FontSize: 12, S: "a"},
				{X: 50, Y: 100, W: 0, FontSize: 12, S: ""},
				{X: 10, Y: 700, W: 10, FontSize: 12, S: "b"},
			},
			want: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layoutLines(tt.glyphs))
		})
	}
}

func TestLayoutRow(t *testing.T) {
	glyphs := []glyph{
		{X: 0, Y: 700, W: 30, FontSize: 12, S: "left"},
		{X: 60, Y: 690, W: 30, FontSize: 12, S: "right"},
	}
	assert.Equal(t, "left right", layoutRow(glyphs))
}
