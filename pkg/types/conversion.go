// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Attempt records one try of an extraction backend or a model. Attempts are
// kept for diagnostics only and never persisted on their own.
type Attempt struct {
	// Name is the backend name or model identifier.
	Name string `json:"name" yaml:"name"`

	// Err is the failure reason; empty when the attempt succeeded.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the attempt succeeded.
func (a Attempt) OK() bool {
	return a.Err == ""
}

// Extraction is the text produced from one PDF by the first backend that
// yielded non-empty output.
type Extraction struct {
	// Backend names the backend that produced Text.
	Backend string `json:"backend" yaml:"backend"`

	// Text is the normalized extracted text.
	Text string `json:"text" yaml:"text"`

	// RawChars is the character count before normalization.
	RawChars int `json:"raw_chars" yaml:"raw_chars"`

	// Pages is the page count of the PDF.
	Pages int `json:"pages" yaml:"pages"`

	// Attempts lists every backend tried, in order.
	Attempts []Attempt `json:"attempts" yaml:"attempts"`
}

// Enhancement is the outcome of the AI stage.
type Enhancement struct {
	// Text is the enhanced text, or the input verbatim when Skipped.
	Text string `json:"text" yaml:"text"`

	// Model is the model that produced Text; empty when Skipped.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Skipped reports that no model succeeded and the input passed through.
	Skipped bool `json:"skipped" yaml:"skipped"`

	// Attempts lists every model tried, in order.
	Attempts []Attempt `json:"attempts" yaml:"attempts"`
}

// BlockKind distinguishes headings from body paragraphs.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
)

// Block is one paragraph of the output document.
type Block struct {
	Kind BlockKind `json:"kind" yaml:"kind"`
	Text string    `json:"text" yaml:"text"`

	// Level is the heading level (1 or 2); zero for paragraphs.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`
}

// ConversionResult summarizes a successful conversion run.
type ConversionResult struct {
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Pages is the number of pages extracted.
	Pages int `json:"pages" yaml:"pages"`

	// Chars is the number of characters sent to the enhancer.
	Chars int `json:"chars" yaml:"chars"`

	// OutputChars is the number of characters written to the document.
	OutputChars int `json:"output_chars" yaml:"output_chars"`

	// Blocks is the number of paragraphs and headings written.
	Blocks int `json:"blocks" yaml:"blocks"`

	Backend string `json:"backend" yaml:"backend"`

	// Model is the model that enhanced the text; empty when enhancement
	// was skipped.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	EnhancementSkipped bool `json:"enhancement_skipped" yaml:"enhancement_skipped"`

	ExtractionAttempts []Attempt `json:"extraction_attempts" yaml:"extraction_attempts"`
	ModelAttempts      []Attempt `json:"model_attempts" yaml:"model_attempts"`

	// Text is the final text written to the document.
	Text string `json:"-" yaml:"-"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}
