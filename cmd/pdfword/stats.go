// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfword/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print conversion statistics from the history database",
	Long: `Stats summarizes the runs recorded in the history database: totals,
success rate, pages processed, average time, the most used model, and how
often each extraction backend produced the text.

Use --runs to list the most recent runs instead, as YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("history", "", "history database path (default: history.path from config)")
	statsCmd.Flags().String("format", "text", "output format: text, yaml, json")
	statsCmd.Flags().Int("runs", 0, "list the N most recent runs instead of the summary")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{"history.path": "history"}); err != nil {
		return err
	}
	path := v.GetString("history.path")
	if path == "" {
		return fmt.Errorf("no history database configured: pass --history or set history.path")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("history database %s: %w", path, err)
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	runs, _ := cmd.Flags().GetInt("runs")
	ctx := context.Background()

	if runs > 0 {
		f := history.Format(format)
		if f == history.FormatText {
			f = history.FormatYAML
		}
		return store.Export(ctx, os.Stdout, f, runs)
	}

	sum, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	return history.WriteSummary(os.Stdout, sum, history.Format(format))
}
