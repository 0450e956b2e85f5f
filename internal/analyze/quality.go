// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"regexp"
)

var (
	spacingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[a-z][A-Z]`),
		regexp.MustCompile(`[a-zA-Z][0-9]`),
		regexp.MustCompile(`[0-9][a-zA-Z]`),
		regexp.MustCompile(`[.!?][A-Z]`),
	}
	excessiveSpaces = regexp.MustCompile(` {3,}`)

	garbledPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()\-'"]{3,}`),
		regexp.MustCompile(`[\p{L}\p{N}_]{50,}`),
	}
)

// Quality counts suspected extraction defects in a text.
type Quality struct {
	// SpacingIssues counts spots where a space is likely missing.
	SpacingIssues int `json:"spacing_issues" yaml:"spacing_issues"`

	// ExcessiveSpacing counts runs of three or more spaces.
	ExcessiveSpacing int `json:"excessive_spacing" yaml:"excessive_spacing"`

	// Garbled counts runs of symbols and overlong words.
	Garbled int `json:"garbled" yaml:"garbled"`
}

// CheckQuality scans text for spacing and garbling defects.
func CheckQuality(text string) Quality {
	var q Quality
	for _, re := range spacingPatterns {
		q.SpacingIssues += len(re.FindAllStringIndex(text, -1))
	}
	q.ExcessiveSpacing = len(excessiveSpaces.FindAllStringIndex(text, -1))
	for _, re := range garbledPatterns {
		q.Garbled += len(re.FindAllStringIndex(text, -1))
	}
	return q
}

// Issues describes each non-zero count; empty when no issue was found.
func (q Quality) Issues() []string {
	var out []string
	if q.SpacingIssues > 0 {
		out = append(out, fmt.Sprintf("Found %d potential spacing issues", q.SpacingIssues))
	}
	if q.ExcessiveSpacing > 0 {
		out = append(out, fmt.Sprintf("Found %d instances of excessive spacing", q.ExcessiveSpacing))
	}
	if q.Garbled > 0 {
		out = append(out, fmt.Sprintf("Potential garbled text detected: %d instances", q.Garbled))
	}
	return out
}
