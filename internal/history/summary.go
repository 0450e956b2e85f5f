// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"
)

// Summary aggregates all recorded runs.
type Summary struct {
	Total          int `json:"total" yaml:"total"`
	Successful     int `json:"successful" yaml:"successful"`
	Failed         int `json:"failed" yaml:"failed"`
	PagesProcessed int `json:"pages_processed" yaml:"pages_processed"`

	// AverageDuration is the mean duration of successful runs.
	AverageDuration time.Duration `json:"average_duration" yaml:"average_duration"`

	// Models counts runs per enhancing model.
	Models map[string]int `json:"models" yaml:"models"`

	// Backends counts runs per extraction backend.
	Backends map[string]int `json:"backends" yaml:"backends"`

	LastRun time.Time `json:"last_run,omitzero" yaml:"last_run,omitempty"`
}

// SuccessRate returns the percentage of successful runs, or 0 when
// nothing has been recorded.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.Total) * 100
}

// MostUsedModel returns the model with the most runs, or "" when no run
// was enhanced. Ties go to the alphabetically first model.
func (s Summary) MostUsedModel() string {
	return mostUsed(s.Models)
}

func mostUsed(counts map[string]int) string {
	best, bestN := "", 0
	for name, n := range counts {
		if n > bestN || (n == bestN && name < best) {
			best, bestN = name, n
		}
	}
	return best
}

// Summary computes totals over every recorded run.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	sum := Summary{Models: map[string]int{}, Backends: map[string]int{}}

	var (
		avgMS   float64
		lastRun string
	)
	err := s.db.QueryRowContext(ctx, `SELECT
			count(*),
			coalesce(sum(success), 0),
			coalesce(sum(CASE WHEN success = 1 THEN pages ELSE 0 END), 0),
			coalesce(avg(CASE WHEN success = 1 THEN duration_ms END), 0),
			coalesce(max(created_at), '')
		FROM runs`,
	).Scan(&sum.Total, &sum.Successful, &sum.PagesProcessed, &avgMS, &lastRun)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing runs: %w", err)
	}
	sum.Failed = sum.Total - sum.Successful
	sum.AverageDuration = time.Duration(avgMS * float64(time.Millisecond))
	if t, err := time.Parse(time.RFC3339Nano, lastRun); err == nil {
		sum.LastRun = t
	}

	if err := s.countBy(ctx, "model", sum.Models); err != nil {
		return Summary{}, err
	}
	if err := s.countBy(ctx, "backend", sum.Backends); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// countBy fills counts with the number of runs per non-empty value of
// column. column is never user input.
func (s *Store) countBy(ctx context.Context, column string, counts map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+column+`, count(*) FROM runs
		WHERE `+column+` IS NOT NULL AND `+column+` != ''
		GROUP BY `+column)
	if err != nil {
		return fmt.Errorf("counting runs by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return fmt.Errorf("scanning %s count: %w", column, err)
		}
		counts[name] = n
	}
	return rows.Err()
}

// WriteText prints the summary in the human-readable stats layout.
func (s Summary) WriteText(w io.Writer) error {
	model := s.MostUsedModel()
	if model == "" {
		model = "None"
	}

	_, err := fmt.Fprintf(w, `Conversion Statistics:
  Total conversions: %d
  Successful: %d (%.1f%%)
  Failed: %d
  Pages processed: %d
  Average time: %.1fs
  Most used model: %s
`, s.Total, s.Successful, s.SuccessRate(), s.Failed, s.PagesProcessed,
		s.AverageDuration.Seconds(), model)
	if err != nil {
		return err
	}

	if len(s.Backends) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Backends))
	for name := range s.Backends {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintln(w, "  Extraction backends:"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "    %s: %d\n", name, s.Backends[name]); err != nil {
			return err
		}
	}
	return nil
}

// Format selects the output encoding of WriteSummary and Export.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// WriteSummary writes s to w in the given format.
func WriteSummary(w io.Writer, s Summary, format Format) error {
	switch format {
	case FormatText, "":
		return s.WriteText(w)
	default:
		return encode(w, s, format)
	}
}

// Export writes the most recent runs (all when limit <= 0) to w as YAML
// or JSON.
func (s *Store) Export(ctx context.Context, w io.Writer, format Format, limit int) error {
	runs, err := s.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []Run{}
	}
	return encode(w, runs, format)
}

func encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return fmt.Errorf("unknown format %q (valid: text, yaml, json)", format)
	}
}
