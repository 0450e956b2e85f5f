// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the PDF-to-document pipeline: extraction, spacing
// normalization (applied by the extractor), AI enhancement, and document
// writing.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfword/internal/docx"
	"github.com/pdiddy/pdfword/pkg/types"
)

// outputSuffix is appended to the input stem for the default output name.
const outputSuffix = "_converted"

var (
	// ErrConfig marks a configuration problem found before processing,
	// such as a missing credential or an unknown backend.
	ErrConfig = errors.New("configuration error")

	// ErrInput marks an input file that is missing or unreadable.
	ErrInput = errors.New("invalid input")

	// ErrExtraction marks a PDF from which no backend produced text.
	ErrExtraction = errors.New("text extraction failed")

	// ErrWrite marks a failure to write the output document.
	ErrWrite = errors.New("writing output failed")
)

// Stage names a pipeline step in error messages.
type Stage string

const (
	StageConfig  Stage = "config"
	StageInput   Stage = "input"
	StageExtract Stage = "extract"
	StageWrite   Stage = "write"
)

// StageError wraps the error of the stage that stopped a run. It matches
// both the stage sentinel (ErrInput, ErrExtraction, ...) and the cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, sentinel, err error) error {
	return &StageError{Stage: stage, Err: fmt.Errorf("%w: %w", sentinel, err)}
}

// ConfigError wraps err as a configuration-stage failure.
func ConfigError(err error) error {
	return stageErr(StageConfig, ErrConfig, err)
}

// Extractor produces normalized text from a PDF.
type Extractor interface {
	Extract(ctx context.Context, pdfPath string) (*types.Extraction, error)
}

// Enhancer cleans text with a language model. It never fails; a skipped
// enhancement returns the input text.
type Enhancer interface {
	Enhance(ctx context.Context, text string) types.Enhancement
}

// Recorder stores the outcome of each run. err is nil on success.
type Recorder interface {
	Record(ctx context.Context, res *types.ConversionResult, err error) error
}

// Converter sequences the pipeline stages for one PDF at a time.
type Converter struct {
	extractor Extractor
	enhancer  Enhancer
	builder   *docx.Builder
	log       logrus.FieldLogger

	// Recorder, when set, receives every run's outcome.
	Recorder Recorder

	// WriterFor picks the document writer for an output path.
	WriterFor func(path string) docx.Writer
}

// New creates a Converter. A nil enhancer skips enhancement; a nil
// builder uses the default heading rules; a nil logger discards output.
func New(ex Extractor, en Enhancer, b *docx.Builder, log logrus.FieldLogger) *Converter {
	if b == nil {
		b = docx.NewBuilder(0)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Converter{
		extractor: ex,
		enhancer:  en,
		builder:   b,
		log:       log,
		WriterFor: docx.WriterFor,
	}
}

// DefaultOutputPath returns <dir>/<stem>_converted.docx for a PDF path.
func DefaultOutputPath(pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(filepath.Dir(pdfPath), base+outputSuffix+".docx")
}

// Convert turns the PDF at pdfPath into a document at outputPath (or the
// default output path when empty). Failures are *StageError values
// matching ErrInput, ErrExtraction, or ErrWrite. An enhancement failure is
// not an error; the extracted text is written instead.
func (c *Converter) Convert(ctx context.Context, pdfPath, outputPath string) (*types.ConversionResult, error) {
	start := time.Now()
	if outputPath == "" {
		outputPath = DefaultOutputPath(pdfPath)
	}
	res := &types.ConversionResult{InputPath: pdfPath, OutputPath: outputPath}

	err := c.run(ctx, res)
	res.Duration = time.Since(start)

	if c.Recorder != nil {
		if rerr := c.Recorder.Record(ctx, res, err); rerr != nil {
			c.log.WithError(rerr).Warn("recording conversion history failed")
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Converter) run(ctx context.Context, res *types.ConversionResult) error {
	log := c.log.WithField("pdf", res.InputPath)

	if err := checkInput(res.InputPath); err != nil {
		return stageErr(StageInput, ErrInput, err)
	}
	if same, _ := samePath(res.InputPath, res.OutputPath); same {
		return stageErr(StageWrite, ErrWrite, errors.New("output path would overwrite the input PDF"))
	}

	log.Info("extracting text")
	ext, err := c.extractor.Extract(ctx, res.InputPath)
	if err != nil {
		return stageErr(StageExtract, ErrExtraction, err)
	}
	res.Backend = ext.Backend
	res.Pages = ext.Pages
	res.ExtractionAttempts = ext.Attempts
	res.Chars = utf8.RuneCountInString(ext.Text)

	text := ext.Text
	if c.enhancer != nil {
		log.WithField("chars", res.Chars).Info("enhancing text")
		enh := c.enhancer.Enhance(ctx, ext.Text)
		res.ModelAttempts = enh.Attempts
		res.Model = enh.Model
		res.EnhancementSkipped = enh.Skipped
		if enh.Skipped {
			log.Warn("AI enhancement unavailable, writing extracted text")
		}
		text = enh.Text
	} else {
		res.EnhancementSkipped = true
	}

	blocks := c.builder.Build(text)
	res.Blocks = len(blocks)
	res.Text = text
	res.OutputChars = utf8.RuneCountInString(text)

	log.WithField("output", res.OutputPath).Info("writing document")
	if err := c.WriterFor(res.OutputPath).Write(blocks, res.OutputPath); err != nil {
		return stageErr(StageWrite, ErrWrite, err)
	}
	return nil
}

// checkInput verifies that path is an existing, readable regular file.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file not readable: %w", err)
	}
	return f.Close()
}

// samePath reports whether a and b refer to the same file.
func samePath(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
