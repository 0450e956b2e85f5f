// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfword/internal/analyze"
	"github.com/pdiddy/pdfword/internal/container"
	"github.com/pdiddy/pdfword/internal/convert"
	"github.com/pdiddy/pdfword/internal/extract"
	"github.com/pdiddy/pdfword/internal/normalize"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf_path>",
	Short: "Report on the structure and text quality of a PDF",
	Long: `Analyze extracts and normalizes the text of a PDF, then reports line and
word counts, likely headings, structure quality, and spacing or garbling
issues. It makes no AI call and needs no credential.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSlice("backend", nil, "extraction backend to try, in order (repeatable)")
	analyzeCmd.Flags().String("report", "", "write the report to this file (.md, or .html) instead of stdout")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{"extract.backends": "backend"}); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return convert.ConfigError(err)
	}

	norm, err := normalize.FromConfig(cfg.Normalize)
	if err != nil {
		return convert.ConfigError(err)
	}

	ctx := context.Background()

	ex, err := extract.FromConfig(ctx, cfg.Extract, container.OSExecutor{}, logger)
	if err != nil {
		return convert.ConfigError(err)
	}
	ex.Filter = norm.Normalize

	pdfPath := args[0]
	ext, err := ex.Extract(ctx, pdfPath)
	if err != nil {
		return err
	}

	report := analyze.NewReport(pdfPath, "", ext.Text)
	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath != "" {
		if err := report.Write(reportPath); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportPath)
		return nil
	}

	fmt.Printf("Extracted %d pages with %s (%d characters before normalization)\n\n",
		ext.Pages, ext.Backend, ext.RawChars)
	fmt.Print(report.Markdown())
	return nil
}
