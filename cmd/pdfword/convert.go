// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfword/internal/analyze"
	"github.com/pdiddy/pdfword/internal/container"
	"github.com/pdiddy/pdfword/internal/convert"
	"github.com/pdiddy/pdfword/internal/docx"
	"github.com/pdiddy/pdfword/internal/enhance"
	"github.com/pdiddy/pdfword/internal/extract"
	"github.com/pdiddy/pdfword/internal/history"
	"github.com/pdiddy/pdfword/internal/normalize"
	"github.com/pdiddy/pdfword/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <pdf_path>...",
	Short: "Convert PDF files to Word documents",
	Long: `Convert extracts text from each PDF, repairs merged words and missing
spaces, cleans the text with the configured AI provider, and writes a .docx
next to the input (<name>_converted.docx) or to the path given with -o.

An output path ending in .md writes Markdown instead. A missing AI
credential is reported before any PDF is read; a failed AI call is not
fatal and leaves the extracted text in the document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringP("output", "o", "", "output path (only with a single input; .md writes Markdown)")
	f.StringP("api-key", "k", "", "AI credential (API key, or project ID for vertex)")
	f.String("provider", "", "AI provider: gemini, vertex, openai, anthropic (default gemini)")
	f.StringSlice("model", nil, "model to try, in order (repeatable)")
	f.StringSlice("backend", nil, "extraction backend to try, in order (repeatable): pdftotext, rows, plain, textobj, markitdown")
	f.String("report", "", "write a conversion report (.md, or .html) (only with a single input)")
	f.Int("jobs", 1, "number of PDFs converted at once")
	f.String("history", "", "record runs in this SQLite database")
	f.Bool("skip-existing", false, "skip PDFs whose default output already exists")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	reportPath, _ := cmd.Flags().GetString("report")
	if len(args) > 1 && output != "" {
		return convert.ConfigError(fmt.Errorf("-o can only be used with a single input PDF"))
	}
	if len(args) > 1 && reportPath != "" {
		return convert.ConfigError(fmt.Errorf("--report can only be used with a single input PDF"))
	}

	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{
		"ai.provider":      "provider",
		"ai.models":        "model",
		"extract.backends": "backend",
		"history.path":     "history",
	}); err != nil {
		return err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return convert.ConfigError(err)
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	resolveCredential(&cfg.AI, apiKey, loadedSecrets)

	ctx := context.Background()

	conv, cleanup, err := newConverter(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 1 {
		return convertOne(ctx, conv, args[0], output, reportPath, os.Stdout)
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	skip, _ := cmd.Flags().GetBool("skip-existing")
	result := conv.ConvertBatch(ctx, args, convert.BatchOptions{Jobs: jobs, SkipExisting: skip}, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed conversion", result.Failed)
	}
	return nil
}

// newConverter wires the pipeline stages from cfg. Every configuration
// error is returned before any PDF is read. cleanup releases the AI
// clients and the history database.
func newConverter(ctx context.Context, cfg types.Config) (*convert.Converter, func(), error) {
	enh, err := enhance.FromConfig(ctx, cfg.AI, logger)
	if err != nil {
		return nil, nil, convert.ConfigError(err)
	}
	closeAll := func() {
		if err := enh.Close(); err != nil {
			logger.WithError(err).Debug("closing AI clients")
		}
	}

	norm, err := normalize.FromConfig(cfg.Normalize)
	if err != nil {
		closeAll()
		return nil, nil, convert.ConfigError(err)
	}

	ex, err := extract.FromConfig(ctx, cfg.Extract, container.OSExecutor{}, logger)
	if err != nil {
		closeAll()
		return nil, nil, convert.ConfigError(err)
	}
	ex.Filter = norm.Normalize

	conv := convert.New(ex, enh, docx.NewBuilder(cfg.Docx.MaxHeadingLength), logger)

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			closeAll()
			return nil, nil, convert.ConfigError(err)
		}
		conv.Recorder = store
		prev := closeAll
		closeAll = func() {
			prev()
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("closing history database")
			}
		}
	}

	logger.WithField("backends", ex.Backends()).
		WithField("models", enh.Models()).
		Debug("pipeline configured")
	return conv, closeAll, nil
}

// convertOne converts a single PDF, prints a summary, and writes the
// optional report.
func convertOne(ctx context.Context, conv *convert.Converter, pdfPath, output, reportPath string, w io.Writer) error {
	res, err := conv.Convert(ctx, pdfPath, output)
	if err != nil {
		return err
	}
	printResult(w, res)

	if reportPath == "" {
		return nil
	}
	report := analyze.NewReport(res.InputPath, res.OutputPath, res.Text)
	if store, ok := conv.Recorder.(*history.Store); ok {
		sum, err := store.Summary(ctx)
		if err != nil {
			logger.WithError(err).Warn("history summary unavailable for report")
		} else {
			report.Stats = &sum
		}
	}
	if err := report.Write(reportPath); err != nil {
		return err
	}
	fmt.Fprintf(w, "Report:    %s\n", reportPath)
	return nil
}

func printResult(w io.Writer, res *types.ConversionResult) {
	fmt.Fprintf(w, "Converted: %s -> %s\n", res.InputPath, res.OutputPath)
	fmt.Fprintf(w, "Pages:     %d (backend: %s)\n", res.Pages, res.Backend)
	if res.EnhancementSkipped {
		fmt.Fprintln(w, "AI:        skipped, extracted text written")
		for _, a := range res.ModelAttempts {
			fmt.Fprintf(w, "           %s: %s\n", a.Name, a.Err)
		}
	} else {
		fmt.Fprintf(w, "AI:        %s\n", res.Model)
	}
	fmt.Fprintf(w, "Blocks:    %d\n", res.Blocks)
	fmt.Fprintf(w, "Time:      %.1fs\n", res.Duration.Seconds())
}
