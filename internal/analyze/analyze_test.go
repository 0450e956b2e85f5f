// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfword/internal/history"
)

func lines(heads, body int) string {
	var out []string
	for range heads {
		out = append(out, "SECTION TITLE")
	}
	for range body {
		out = append(out, "An ordinary line of body text.")
	}
	return strings.Join(out, "\n")
}

func TestAnalyze_StructureQuality(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"good", lines(1, 9), QualityGood},
		{"few headings", lines(1, 20), QualityFewHeadings},
		{"too many headings", lines(2, 3), QualityManyHeads},
		{"no headings", lines(0, 5), QualityNoStructure},
		{"only headings", lines(3, 0), QualityNoStructure},
		{"empty", "", QualityNoStructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.text).StructureQuality)
		})
	}
}

func TestAnalyze_Counts(t *testing.T) {
	text := "INTRODUCTION\nBody line one.\n\n  Methods:\nChapter 2 begins\nPart of the story is here.\n2024"
	a := Analyze(text)

	assert.Equal(t, 7, a.TotalLines)
	assert.Equal(t, 6, a.NonEmptyLines)
	// INTRODUCTION, Methods:, Chapter 2 begins, Part of the story...
	assert.Equal(t, 4, a.PotentialHeadings)
	assert.Equal(t, 2, a.Paragraphs)
	assert.Equal(t, 15, a.Words)
	assert.Equal(t, len(text), a.Chars)

	want := float64(len("INTRODUCTION")+len("Body line one.")+len("  Methods:")+
		len("Chapter 2 begins")+len("Part of the story is here.")+len("2024")) / 6
	assert.InDelta(t, want, a.AverageLineLength, 0.0001)
}

func TestLooksLikeHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"RESULTS", true},
		{"PART 1", true},
		{"Summary:", true},
		{"Section 4.2 Methods", true},
		{"Regular sentence here.", false},
		{"2024", false},
		{strings.Repeat("A", 80), false},
		{strings.Repeat("A", 79), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, looksLikeHeading(tt.line), "line %q", tt.line)
	}
}

func TestSuggestions(t *testing.T) {
	few := Analysis{StructureQuality: QualityFewHeadings, Words: 500, AverageLineLength: 50}
	assert.Equal(t, []string{"Consider adding more section headings to improve document structure"}, few.Suggestions())

	many := Analysis{StructureQuality: QualityManyHeads, Words: 50, AverageLineLength: 250}
	s := many.Suggestions()
	require.Len(t, s, 3)
	assert.Contains(t, s[0], "misidentified")
	assert.Contains(t, s[1], "long lines")
	assert.Contains(t, s[2], "very short")

	good := Analysis{StructureQuality: QualityGood, Words: 500, AverageLineLength: 60}
	assert.Empty(t, good.Suggestions())
}

func TestCheckQuality(t *testing.T) {
	q := CheckQuality("Thisis aTest.Hello 5apples   end")
	assert.Equal(t, 3, q.SpacingIssues)
	assert.Equal(t, 1, q.ExcessiveSpacing)
	assert.Zero(t, q.Garbled)

	g := CheckQuality("ok @@@ fine " + strings.Repeat("a", 55) + " ### x")
	assert.Equal(t, 3, g.Garbled)

	assert.Equal(t, Quality{}, CheckQuality("Clean text, with punctuation (and quotes) \"here\"."))
}

func TestCheckQuality_UnicodeLettersNotGarbled(t *testing.T) {
	assert.Zero(t, CheckQuality("Ångström café naïve résumé").Garbled)
}

func TestQualityIssues(t *testing.T) {
	assert.Empty(t, Quality{}.Issues())
	assert.Equal(t, []string{
		"Found 2 potential spacing issues",
		"Found 1 instances of excessive spacing",
		"Potential garbled text detected: 4 instances",
	}, Quality{SpacingIssues: 2, ExcessiveSpacing: 1, Garbled: 4}.Issues())
}

func TestReport_Markdown(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "paper_converted.docx")
	require.NoError(t, os.WriteFile(out, []byte("12345"), 0o644))

	r := NewReport("paper.pdf", out, lines(1, 9))
	r.Generated = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	r.Stats = &history.Summary{Total: 4, Successful: 3, Failed: 1, PagesProcessed: 9,
		AverageDuration: 1500 * time.Millisecond, Models: map[string]int{"gemini-2.5-flash": 3}}

	md := r.Markdown()
	for _, want := range []string{
		"# PDF to Word Conversion Report",
		"**Generated:** 2026-03-04 05:06:07",
		"- **Input:** `paper.pdf`",
		"- **File Size:** 5 bytes",
		"- **Structure Quality:** Good",
		"- **Potential Headings:** 1",
		"Document seems very short",
		"No quality issues detected.",
		"- **Successful:** 3 (75.0%)",
		"- **Average time:** 1.5s",
		"- **Most used model:** gemini-2.5-flash",
	} {
		assert.Contains(t, md, want)
	}
}

func TestReport_MissingOutputAndNoStats(t *testing.T) {
	r := NewReport("in.pdf", "/nonexistent/out.docx", "aTest")
	md := r.Markdown()
	assert.Contains(t, md, "- **File Size:** Unknown")
	assert.Contains(t, md, "Found 1 potential spacing issues")
	assert.NotContains(t, md, "Conversion Statistics")

	analysisOnly := NewReport("in.pdf", "", "text").Markdown()
	assert.NotContains(t, analysisOnly, "Output:")
}

func TestReport_Write(t *testing.T) {
	dir := t.TempDir()
	r := NewReport("doc.pdf", "", lines(1, 9))

	mdPath := filepath.Join(dir, "report.md")
	require.NoError(t, r.Write(mdPath))
	data, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# PDF to Word Conversion Report"))

	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, r.Write(htmlPath))
	data, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>Conversion report: doc.pdf</title>")
	assert.Contains(t, page, "<h1>PDF to Word Conversion Report</h1>")
	assert.Contains(t, page, "<code>doc.pdf</code>")

	assert.Error(t, r.Write(filepath.Join(dir, "missing", "r.md")))
}
