// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze measures the structure and spacing quality of extracted
// text and renders conversion reports.
package analyze

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Structure quality verdicts.
const (
	QualityGood        = "Good"
	QualityFewHeadings = "Poor (few headings)"
	QualityManyHeads   = "Poor (too many headings)"
	QualityNoStructure = "Poor (no clear structure)"
)

const (
	headingMaxRunes = 80
	minHeadingRatio = 0.05
	maxHeadingRatio = 0.30
	longLineRunes   = 200
	shortDocWords   = 100
)

var headingPrefixes = []string{"Chapter", "Section", "Part"}

// Analysis describes the line structure of a text.
type Analysis struct {
	TotalLines        int     `json:"total_lines" yaml:"total_lines"`
	NonEmptyLines     int     `json:"non_empty_lines" yaml:"non_empty_lines"`
	PotentialHeadings int     `json:"potential_headings" yaml:"potential_headings"`
	Paragraphs        int     `json:"paragraphs" yaml:"paragraphs"`
	Words             int     `json:"words" yaml:"words"`
	Chars             int     `json:"chars" yaml:"chars"`
	AverageLineLength float64 `json:"average_line_length" yaml:"average_line_length"`
	StructureQuality  string  `json:"structure_quality" yaml:"structure_quality"`
}

// Analyze counts lines, words, and characters, and classifies each
// non-empty line as a potential heading or a paragraph line.
func Analyze(text string) Analysis {
	lines := strings.Split(text, "\n")
	a := Analysis{
		TotalLines: len(lines),
		Words:      len(strings.Fields(text)),
		Chars:      utf8.RuneCountInString(text),
	}

	var lineRunes int
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		a.NonEmptyLines++
		lineRunes += utf8.RuneCountInString(line)

		if looksLikeHeading(strings.TrimSpace(line)) {
			a.PotentialHeadings++
		} else {
			a.Paragraphs++
		}
	}
	if a.NonEmptyLines > 0 {
		a.AverageLineLength = float64(lineRunes) / float64(a.NonEmptyLines)
	}

	a.StructureQuality = structureQuality(a)
	return a
}

func structureQuality(a Analysis) string {
	if a.PotentialHeadings == 0 || a.Paragraphs == 0 {
		return QualityNoStructure
	}
	ratio := float64(a.PotentialHeadings) / float64(a.NonEmptyLines)
	switch {
	case ratio < minHeadingRatio:
		return QualityFewHeadings
	case ratio > maxHeadingRatio:
		return QualityManyHeads
	default:
		return QualityGood
	}
}

// looksLikeHeading reports whether a trimmed line is short and either all
// caps, ends with a colon, or starts with a sectioning word.
func looksLikeHeading(line string) bool {
	if utf8.RuneCountInString(line) >= headingMaxRunes {
		return false
	}
	if isUpper(line) || strings.HasSuffix(line, ":") {
		return true
	}
	for _, p := range headingPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// isUpper reports whether s has at least one cased letter and no
// lowercase letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// Suggestions returns improvement hints for an analysis; none when the
// text looks well formed.
func (a Analysis) Suggestions() []string {
	var out []string
	switch a.StructureQuality {
	case QualityFewHeadings:
		out = append(out, "Consider adding more section headings to improve document structure")
	case QualityManyHeads:
		out = append(out, "Some headings might be misidentified; review heading detection")
	}
	if a.AverageLineLength > longLineRunes {
		out = append(out, "Very long lines detected; this may indicate formatting issues")
	}
	if a.Words < shortDocWords {
		out = append(out, "Document seems very short; verify extraction was complete")
	}
	return out
}
