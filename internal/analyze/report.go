// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/pdfword/internal/history"
)

// Report collects everything shown in a conversion report.
type Report struct {
	Generated time.Time
	Input     string

	// Output is the written document; empty for analysis-only reports.
	Output string

	Analysis Analysis
	Quality  Quality

	// Stats, when set, appends the history summary.
	Stats *history.Summary
}

// NewReport analyzes text and returns a report for input and output.
func NewReport(input, output, text string) *Report {
	return &Report{
		Generated: time.Now(),
		Input:     input,
		Output:    output,
		Analysis:  Analyze(text),
		Quality:   CheckQuality(text),
	}
}

// Markdown renders the report as Markdown.
func (r *Report) Markdown() string {
	var b strings.Builder
	a := r.Analysis

	b.WriteString("# PDF to Word Conversion Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", r.Generated.Format("2006-01-02 15:04:05"))

	b.WriteString("## File Information\n\n")
	fmt.Fprintf(&b, "- **Input:** `%s`\n", r.Input)
	if r.Output != "" {
		fmt.Fprintf(&b, "- **Output:** `%s`\n", r.Output)
		size := "Unknown"
		if info, err := os.Stat(r.Output); err == nil {
			size = fmt.Sprintf("%d bytes", info.Size())
		}
		fmt.Fprintf(&b, "- **File Size:** %s\n", size)
	}

	b.WriteString("\n## Document Analysis\n\n")
	fmt.Fprintf(&b, "- **Total Lines:** %d\n", a.TotalLines)
	fmt.Fprintf(&b, "- **Word Count:** %d\n", a.Words)
	fmt.Fprintf(&b, "- **Character Count:** %d\n", a.Chars)
	fmt.Fprintf(&b, "- **Potential Headings:** %d\n", a.PotentialHeadings)
	fmt.Fprintf(&b, "- **Paragraphs:** %d\n", a.Paragraphs)
	fmt.Fprintf(&b, "- **Structure Quality:** %s\n", a.StructureQuality)
	fmt.Fprintf(&b, "- **Average Line Length:** %.1f characters\n", a.AverageLineLength)

	if s := a.Suggestions(); len(s) > 0 {
		b.WriteString("\n### Suggestions\n\n")
		for _, line := range s {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	b.WriteString("\n## Quality Assessment\n\n")
	if issues := r.Quality.Issues(); len(issues) > 0 {
		b.WriteString("**Issues Found:**\n\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	} else {
		b.WriteString("No quality issues detected.\n")
	}

	if r.Stats != nil {
		s := r.Stats
		model := s.MostUsedModel()
		if model == "" {
			model = "None"
		}
		b.WriteString("\n## Conversion Statistics\n\n")
		fmt.Fprintf(&b, "- **Total conversions:** %d\n", s.Total)
		fmt.Fprintf(&b, "- **Successful:** %d (%.1f%%)\n", s.Successful, s.SuccessRate())
		fmt.Fprintf(&b, "- **Failed:** %d\n", s.Failed)
		fmt.Fprintf(&b, "- **Pages processed:** %d\n", s.PagesProcessed)
		fmt.Fprintf(&b, "- **Average time:** %.1fs\n", s.AverageDuration.Seconds())
		fmt.Fprintf(&b, "- **Most used model:** %s\n", model)
	}
	return b.String()
}

// HTML renders the report Markdown as a standalone HTML page.
func (r *Report) HTML() (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &body); err != nil {
		return "", fmt.Errorf("rendering report HTML: %w", err)
	}

	title := html.EscapeString("Conversion report: " + filepath.Base(r.Input))
	return fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		title, body.String()), nil
}

// Write saves the report to path: HTML when path ends in .html or .htm,
// Markdown otherwise.
func (r *Report) Write(path string) error {
	content := r.Markdown()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		var err error
		if content, err = r.HTML(); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
