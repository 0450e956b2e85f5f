// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pdfword/pkg/types"
)

// BatchOptions controls ConvertBatch.
type BatchOptions struct {
	// Jobs is the number of PDFs converted at once. Values below 1 mean 1.
	Jobs int

	// SkipExisting leaves a PDF alone when its default output exists.
	SkipExisting bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Results holds one entry per input, in input order; nil for skipped
	// and failed inputs.
	Results []*types.ConversionResult

	// Errors holds one entry per input, in input order; nil unless failed.
	Errors []error
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any PDFs failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts each PDF to its default output path, printing
// per-file status to w and returning a summary. Each run is independent;
// a failure does not stop the others.
func (c *Converter) ConvertBatch(ctx context.Context, pdfPaths []string, opts BatchOptions, w io.Writer) BatchResult {
	result := BatchResult{
		Results: make([]*types.ConversionResult, len(pdfPaths)),
		Errors:  make([]error, len(pdfPaths)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(max(opts.Jobs, 1))

	for i, p := range pdfPaths {
		g.Go(func() error {
			out := DefaultOutputPath(p)
			if opts.SkipExisting {
				if _, err := os.Stat(out); err == nil {
					mu.Lock()
					defer mu.Unlock()
					fmt.Fprintf(w, "skipped: %s (already exists)\n", p)
					result.Skipped++
					return nil
				}
			}

			res, err := c.Convert(ctx, p, out)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", p, err)
				result.Errors[i] = err
				result.Failed++
				return nil
			}
			fmt.Fprintf(w, "converted: %s -> %s\n", p, res.OutputPath)
			result.Results[i] = res
			result.Converted++
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
