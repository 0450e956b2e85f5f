// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx turns plain text into paragraphs and headings and writes
// them as a Word document, or as Markdown.
package docx

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/pdfword/pkg/types"
)

// DefaultMaxHeadingLength is the longest line, in runes, that may be
// treated as a heading.
const DefaultMaxHeadingLength = 80

var (
	blankLine      = regexp.MustCompile(`\n[ \t]*\n`)
	level1Prefixes = []string{"chapter", "part", "section"}
)

// Builder splits text into document blocks.
type Builder struct {
	MaxHeadingLength int
}

// NewBuilder returns a Builder with the given heading length limit, or the
// default when limit is zero or less.
func NewBuilder(limit int) *Builder {
	if limit <= 0 {
		limit = DefaultMaxHeadingLength
	}
	return &Builder{MaxHeadingLength: limit}
}

// Build splits text into paragraphs on blank lines. Lines inside one
// paragraph are joined with single spaces. A paragraph becomes a heading
// when it is one short line without terminal punctuation, contains a
// letter, and another paragraph follows it. No title is added.
func (b *Builder) Build(text string) []types.Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n\n")

	var paras [][]string
	for _, chunk := range blankLine.Split(text, -1) {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			paras = append(paras, lines)
		}
	}

	blocks := make([]types.Block, 0, len(paras))
	for i, lines := range paras {
		joined := strings.Join(lines, " ")
		if len(lines) == 1 && i < len(paras)-1 && b.isHeading(joined) {
			blocks = append(blocks, types.Block{Kind: types.BlockHeading, Text: joined, Level: headingLevel(joined)})
			continue
		}
		blocks = append(blocks, types.Block{Kind: types.BlockParagraph, Text: joined})
	}
	return blocks
}

func (b *Builder) isHeading(line string) bool {
	limit := b.MaxHeadingLength
	if limit <= 0 {
		limit = DefaultMaxHeadingLength
	}
	if utf8.RuneCountInString(line) > limit {
		return false
	}
	if strings.ContainsAny(line[len(line)-1:], ".!?,;") {
		return false
	}
	return strings.IndexFunc(line, unicode.IsLetter) >= 0
}

// headingLevel is 1 for ALL CAPS lines and lines starting with Chapter,
// Part, or Section; 2 otherwise.
func headingLevel(line string) int {
	if strings.ToUpper(line) == line {
		return 1
	}
	first := strings.ToLower(strings.Fields(line)[0])
	for _, p := range level1Prefixes {
		if first == p {
			return 1
		}
	}
	return 2
}
