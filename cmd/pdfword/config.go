// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfword/internal/docx"
	"github.com/pdiddy/pdfword/internal/enhance"
	"github.com/pdiddy/pdfword/internal/extract"
	"github.com/pdiddy/pdfword/internal/secrets"
	"github.com/pdiddy/pdfword/pkg/types"
)

// setDefaults registers the default value of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("extract.backends", extract.DefaultBackends)
	v.SetDefault("extract.pdftotext_bin", "pdftotext")
	v.SetDefault("normalize.rules_file", "")
	v.SetDefault("normalize.segment", false)
	v.SetDefault("normalize.segment_min_length", 4)
	v.SetDefault("ai.provider", string(types.ProviderGemini))
	v.SetDefault("ai.models", []string{})
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.project", "")
	v.SetDefault("ai.region", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout", "0s")
	v.SetDefault("ai.max_tokens", 0)
	v.SetDefault("ai.rate_limit_retries", 0)
	v.SetDefault("docx.max_heading_length", docx.DefaultMaxHeadingLength)
	v.SetDefault("history.path", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// loadConfig reads the stage configuration from v. The AI credential is
// not resolved here; see resolveCredential.
func loadConfig(v *viper.Viper) (types.Config, error) {
	provider, err := enhance.ParseProvider(v.GetString("ai.provider"))
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		Extract: types.ExtractConfig{
			Backends:     v.GetStringSlice("extract.backends"),
			PdftotextBin: v.GetString("extract.pdftotext_bin"),
		},
		Normalize: types.NormalizeConfig{
			RulesFile:        v.GetString("normalize.rules_file"),
			Segment:          v.GetBool("normalize.segment"),
			SegmentMinLength: v.GetInt("normalize.segment_min_length"),
		},
		AI: types.AIConfig{
			Provider:         provider,
			Models:           v.GetStringSlice("ai.models"),
			APIKey:           v.GetString("ai.api_key"),
			Project:          v.GetString("ai.project"),
			Region:           v.GetString("ai.region"),
			BaseURL:          v.GetString("ai.base_url"),
			Timeout:          v.GetDuration("ai.timeout"),
			MaxTokens:        v.GetInt("ai.max_tokens"),
			RateLimitRetries: v.GetInt("ai.rate_limit_retries"),
		},
		Docx: types.DocxConfig{
			MaxHeadingLength: v.GetInt("docx.max_heading_length"),
		},
		History: types.HistoryConfig{
			Path: v.GetString("history.path"),
		},
	}
	if cfg.AI.Timeout < 0 {
		return types.Config{}, fmt.Errorf("ai.timeout must not be negative")
	}
	return cfg, nil
}

// resolveCredential fills the provider credential from, in order, the
// explicit flag value, the config file, the provider environment variable,
// and the .secrets directory.
func resolveCredential(ai *types.AIConfig, flagValue string, s secrets.Secrets) {
	explicit := flagValue
	if explicit == "" {
		explicit = ai.Credential()
	}
	value := s.Resolve(explicit, enhance.CredentialEnv[ai.Provider], enhance.CredentialSecret[ai.Provider])
	if ai.Provider == types.ProviderVertex {
		ai.Project = value
	} else {
		ai.APIKey = value
	}
}

// bindFlags binds the named flags of cmd to configuration keys. Binding
// happens when the command runs so that commands sharing a key each bind
// their own flag.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}
