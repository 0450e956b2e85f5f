package types

import "time"

// ExtractConfig holds settings for the text extraction stage.
type ExtractConfig struct {
	// Backends lists extraction backends in priority order
	// (pdftotext, rows, plain, textobj, markitdown).
	Backends []string `json:"backends" yaml:"backends"`

	// PdftotextBin is the pdftotext binary name or path (default "pdftotext").
	PdftotextBin string `json:"pdftotext_bin" yaml:"pdftotext_bin"`
}

// NormalizeConfig holds settings for the spacing normalizer.
type NormalizeConfig struct {
	// RulesFile is an optional YAML file with extra merged words, lexicon
	// words, and regex rules.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`

	// Segment enables lexicon segmentation of merged letter runs.
	Segment bool `json:"segment" yaml:"segment"`

	// SegmentMinLength is the shortest letter run considered for
	// segmentation (default 4).
	SegmentMinLength int `json:"segment_min_length" yaml:"segment_min_length"`
}

// AIProvider identifies the hosted model API.
type AIProvider string

const (
	ProviderGemini    AIProvider = "gemini"
	ProviderVertex    AIProvider = "vertex"
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
)

// AIConfig holds settings for the enhancement stage.
type AIConfig struct {
	// Provider selects the model API (default gemini).
	Provider AIProvider `json:"provider" yaml:"provider"`

	// Models lists model identifiers in fallback order.
	Models []string `json:"models" yaml:"models"`

	// APIKey is the credential for gemini, openai, and anthropic.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Project and Region address Vertex AI; Project doubles as the
	// credential for the vertex provider.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`

	// BaseURL overrides the API endpoint (openai, anthropic).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Timeout bounds each HTTP request. Zero leaves the library default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxTokens caps the response length where the API requires it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// RateLimitRetries is the number of extra attempts on HTTP 429 for
	// the anthropic provider. Zero means each model is tried once.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries"`
}

// Credential returns the value that authenticates the configured provider.
func (c AIConfig) Credential() string {
	if c.Provider == ProviderVertex {
		return c.Project
	}
	return c.APIKey
}

// DocxConfig holds settings for the document builder.
type DocxConfig struct {
	// MaxHeadingLength is the longest line (in runes) treated as a heading
	// (default 80).
	MaxHeadingLength int `json:"max_heading_length" yaml:"max_heading_length"`
}

// HistoryConfig holds settings for the optional conversion history.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Config groups all stage configurations for a conversion run.
type Config struct {
	Extract   ExtractConfig   `json:"extract" yaml:"extract"`
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize"`
	AI        AIConfig        `json:"ai" yaml:"ai"`
	Docx      DocxConfig      `json:"docx" yaml:"docx"`
	History   HistoryConfig   `json:"history" yaml:"history"`
}
