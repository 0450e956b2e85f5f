// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"

	"github.com/pdiddy/pdfword/pkg/types"
)

// ErrWrite is matched by every error a Writer returns.
var ErrWrite = errors.New("writing document")

// Writer saves blocks to a file, overwriting it if it exists. Writers
// never create directories.
type Writer interface {
	Write(blocks []types.Block, path string) error
}

// WriterFor selects a writer from the output extension: .md and .markdown
// get Markdown, anything else a Word document.
func WriterFor(path string) Writer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return MarkdownWriter{}
	default:
		return DocxWriter{}
	}
}

// checkTarget verifies that path names a file in an existing, writable
// directory.
func checkTarget(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty output path", ErrWrite)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrWrite, path)
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: output directory %s: %w", ErrWrite, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrWrite, dir)
	}
	return nil
}

// DocxWriter writes a Word document with github.com/gomutex/godocx.
type DocxWriter struct{}

func (DocxWriter) Write(blocks []types.Block, path string) error {
	if err := checkTarget(path); err != nil {
		return err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("%w: creating document: %w", ErrWrite, err)
	}

	for _, b := range blocks {
		switch b.Kind {
		case types.BlockHeading:
			level := b.Level
			if level < 1 {
				level = 1
			}
			if _, err := doc.AddHeading(b.Text, uint(level)); err != nil {
				return fmt.Errorf("%w: adding heading %q: %w", ErrWrite, b.Text, err)
			}
		default:
			doc.AddParagraph(b.Text)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("%w: saving %s: %w", ErrWrite, path, err)
	}
	return nil
}

// MarkdownWriter writes headings as ATX headings and paragraphs separated
// by blank lines.
type MarkdownWriter struct{}

func (MarkdownWriter) Write(blocks []types.Block, path string) error {
	if err := checkTarget(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(blocks)), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// RenderMarkdown returns blocks as Markdown text.
func RenderMarkdown(blocks []types.Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		if blk.Kind == types.BlockHeading {
			b.WriteString(strings.Repeat("#", max(blk.Level, 1)))
			b.WriteString(" ")
		}
		b.WriteString(blk.Text)
		b.WriteString("\n")
	}
	return b.String()
}
