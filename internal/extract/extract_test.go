// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfword/internal/pdftest"
)

// fakeBackend implements Backend for testing. It returns canned pages or
// an error, and counts calls.
type fakeBackend struct {
	name  string
	pages []string
	err   error
	panic bool
	calls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Extract(_ context.Context, _ string) ([]string, error) {
	f.calls++
	if f.panic {
		panic("malformed xref")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func noPageCount(t *testing.T) {
	t.Helper()
	orig := pageCountFile
	pageCountFile = func(string) (int, error) { return 0, errors.New("not a real PDF") }
	t.Cleanup(func() { pageCountFile = orig })
}

func TestExtract_Fallback(t *testing.T) {
	noPageCount(t)

	tests := []struct {
		name        string
		backends    []*fakeBackend
		wantBackend string
		wantText    string
		wantTried   int
	}{
		{
			name: "first backend wins",
			backends: []*fakeBackend{
				{name: "a", pages: []string{"alpha"}},
				{name: "b", pages: []string{"beta"}},
			},
			wantBackend: "a",
			wantText:    "alpha",
			wantTried:   1,
		},
		{
			name: "error falls through",
			backends: []*fakeBackend{
				{name: "a", err: errors.New("broken xref")},
				{name: "b", pages: []string{"beta"}},
			},
			wantBackend: "b",
			wantText:    "beta",
			wantTried:   2,
		},
		{
			name: "whitespace-only output falls through",
			backends: []*fakeBackend{
				{name: "a", pages: []string{"  \n\t", "\f"}},
				{name: "b", pages: []string{"beta"}},
			},
			wantBackend: "b",
			wantText:    "beta",
			wantTried:   2,
		},
		{
			name: "panic falls through",
			backends: []*fakeBackend{
				{name: "a", panic: true},
				{name: "b", pages: []string{"beta"}},
			},
			wantBackend: "b",
			wantText:    "beta",
			wantTried:   2,
		},
		{
			name: "pages joined with blank line",
			backends: []*fakeBackend{
				{name: "a", pages: []string{"one\n", "", "two  "}},
			},
			wantBackend: "a",
			wantText:    "one\n\ntwo",
			wantTried:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backends := make([]Backend, len(tt.backends))
			for i, b := range tt.backends {
				backends[i] = b
			}
			ex := New(backends, nil)

			got, err := ex.Extract(context.Background(), "doc.pdf")
			require.NoError(t, err)

			assert.Equal(t, tt.wantBackend, got.Backend)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Len(t, got.Attempts, tt.wantTried)
			assert.True(t, got.Attempts[len(got.Attempts)-1].OK())
			for _, a := range got.Attempts[:len(got.Attempts)-1] {
				assert.False(t, a.OK())
			}
			if tt.wantTried < len(tt.backends) {
				assert.Zero(t, tt.backends[tt.wantTried].calls, "later backends must not run")
			}
		})
	}
}

func TestExtract_Exhausted(t *testing.T) {
	noPageCount(t)

	ex := New([]Backend{
		&fakeBackend{name: "pdftotext", err: errors.New("not installed")},
		&fakeBackend{name: "rows", pages: []string{""}},
	}, nil)

	got, err := ex.Extract(context.Background(), "scan.pdf")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrExhausted))

	var exh *ExhaustedError
	require.True(t, errors.As(err, &exh))
	assert.Equal(t, "scan.pdf", exh.Path)
	require.Len(t, exh.Attempts, 2)
	assert.Equal(t, "not installed", exh.Attempts[0].Err)
	assert.Equal(t, "empty output", exh.Attempts[1].Err)

	msg := err.Error()
	assert.Contains(t, msg, "scan.pdf")
	assert.Contains(t, msg, "pdftotext: not installed")
	assert.Contains(t, msg, "rows: empty output")
}

func TestExtract_NoBackends(t *testing.T) {
	_, err := New(nil, nil).Extract(context.Background(), "x.pdf")
	require.ErrorIs(t, err, ErrExhausted)
	assert.Contains(t, err.Error(), "no backends configured")
}

func TestExtract_FilterAndCounts(t *testing.T) {
	noPageCount(t)

	ex := New([]Backend{&fakeBackend{name: "a", pages: []string{"Thisisatest", "page two"}}}, nil)
	ex.Filter = strings.ToUpper

	got, err := ex.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "THISISATEST\n\nPAGE TWO", got.Text)
	assert.Equal(t, len("Thisisatest\n\npage two"), got.RawChars)
	assert.Equal(t, 2, got.Pages, "falls back to the backend page count")
}

func TestExtract_PageCountFromPDF(t *testing.T) {
	orig := pageCountFile
	pageCountFile = func(string) (int, error) { return 7, nil }
	t.Cleanup(func() { pageCountFile = orig })

	ex := New([]Backend{&fakeBackend{name: "a", pages: []string{"only one"}}}, nil)
	got, err := ex.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Pages)
}

func TestPageCountFile_NoConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	path := pdftest.WriteTextPDF(t, t.TempDir(), "two.pdf", "one", "two")

	n, err := pageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries, "page counting must not write configuration files")
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &fakeBackend{name: "a", pages: []string{"text"}}
	_, err := New([]Backend{b}, nil).Extract(ctx, "doc.pdf")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, b.calls)
}

func TestLibraryBackends(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteTextPDF(t, dir, "hello.pdf", "Hello World", "Second page")

	for _, b := range []Backend{RowsBackend{}, PlainBackend{}, TextObjBackend{}} {
		t.Run(b.Name(), func(t *testing.T) {
			pages, err := b.Extract(context.Background(), path)
			require.NoError(t, err)
			require.Len(t, pages, 2)
			assert.Contains(t, pages[0], "Hello World")
			assert.Contains(t, pages[1], "Second page")
		})
	}
}

func TestLibraryBackends_MissingFile(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "missing.pdf")

	for _, b := range []Backend{RowsBackend{}, PlainBackend{}, TextObjBackend{}} {
		t.Run(b.Name(), func(t *testing.T) {
			_, err := b.Extract(context.Background(), bogus)
			require.Error(t, err)
		})
	}
}

func TestExtractor_RealPDF(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteTextPDF(t, dir, "hello.pdf", "Hello World")

	ex := New([]Backend{TextObjBackend{}}, nil)
	got, err := ex.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", strings.TrimSpace(got.Text))
	assert.Equal(t, 1, got.Pages)
	assert.Equal(t, BackendTextObj, got.Backend)
}

func TestTextObjBackend_WordGaps(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteTextPDF(t, dir, "gaps.pdf", "the quick brown fox\njumps over")

	pages, err := TextObjBackend{}.Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "the quick brown fox\njumps over", strings.TrimSpace(pages[0]))
}

func TestTextObjBackend_NoGlyphWidths(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteBareFontPDF(t, dir, "bare.pdf", "Hello World")

	_, err := TextObjBackend{}.Extract(context.Background(), path)
	require.ErrorIs(t, err, errNoGlyphWidths)
}

func TestExtractor_NoGlyphWidthsFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteBareFontPDF(t, dir, "bare.pdf", "the quick brown fox")

	ex := New([]Backend{TextObjBackend{}, RowsBackend{}}, nil)
	got, err := ex.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, BackendRows, got.Backend)
	assert.Equal(t, "the quick brown fox", strings.TrimSpace(got.Text))
}
