// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfword/pkg/types"
)

// fakeExecutor implements container.Executor for testing.
type fakeExecutor struct {
	paths    map[string]bool
	silentOK map[string]bool
	output   string
	err      error
	lastName string
	lastArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.paths[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	if f.silentOK[name] {
		return nil
	}
	return errors.New("exit status 1")
}

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, _ io.Reader, stdout io.Writer) error {
	f.lastName = name
	f.lastArgs = args
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestPdftotextBackend(t *testing.T) {
	tests := []struct {
		name      string
		exec      *fakeExecutor
		wantPages []string
		errMsg    string
	}{
		{
			name:      "splits pages on form feed",
			exec:      &fakeExecutor{paths: map[string]bool{"pdftotext": true}, output: "page one\n\fpage two\n\f"},
			wantPages: []string{"page one\n", "page two\n"},
		},
		{
			name:      "single page without trailing form feed",
			exec:      &fakeExecutor{paths: map[string]bool{"pdftotext": true}, output: "only"},
			wantPages: []string{"only"},
		},
		{
			name:   "binary missing",
			exec:   &fakeExecutor{},
			errMsg: "pdftotext not installed",
		},
		{
			name:   "command fails",
			exec:   &fakeExecutor{paths: map[string]bool{"pdftotext": true}, err: errors.New("Syntax Error: Couldn't find trailer")},
			errMsg: "Couldn't find trailer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewPdftotextBackend("", tt.exec)
			pages, err := b.Extract(context.Background(), "in.pdf")
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, pages)
			assert.Equal(t, "pdftotext", tt.exec.lastName)
			assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "in.pdf", "-"}, tt.exec.lastArgs)
		})
	}
}

func TestPdftotextBackend_CustomBinary(t *testing.T) {
	exec := &fakeExecutor{paths: map[string]bool{"/opt/poppler/pdftotext": true}, output: "x"}
	b := NewPdftotextBackend("/opt/poppler/pdftotext", exec)
	_, err := b.Extract(context.Background(), "in.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/opt/poppler/pdftotext", exec.lastName)
}

// fakeRuntime implements container.Runtime for testing.
type fakeRuntime struct {
	imageErr error
	runErr   error
	output   string
	gotInput string
}

func (f *fakeRuntime) Name() string { return "docker" }
func (f *fakeRuntime) Available(context.Context) bool { return true }
func (f *fakeRuntime) ImageExists(context.Context, string) error { return f.imageErr }
func (f *fakeRuntime) Run(_ context.Context, _ string, stdin io.Reader, stdout io.Writer) error {
	data, _ := io.ReadAll(stdin)
	f.gotInput = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := io.WriteString(stdout, f.output)
	return err
}

func TestMarkitdownBackend(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o644))

	t.Run("pipes the PDF through the container", func(t *testing.T) {
		rt := &fakeRuntime{output: "# Title\n\nBody"}
		pages, err := NewMarkitdownBackend(rt).Extract(context.Background(), pdfPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"# Title\n\nBody"}, pages)
		assert.Equal(t, "%PDF-1.4 fake", rt.gotInput)
	})

	t.Run("missing image", func(t *testing.T) {
		rt := &fakeRuntime{imageErr: errors.New("no such image")}
		_, err := NewMarkitdownBackend(rt).Extract(context.Background(), pdfPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "markitdown image not available in docker")
	})

	t.Run("container fails", func(t *testing.T) {
		rt := &fakeRuntime{runErr: errors.New("exit status 2")}
		_, err := NewMarkitdownBackend(rt).Extract(context.Background(), pdfPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "converting")
	})

	t.Run("no runtime", func(t *testing.T) {
		_, err := NewMarkitdownBackend(nil).Extract(context.Background(), pdfPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no container runtime")
	})
}

func TestFromConfig(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	tests := []struct {
		name   string
		cfg    types.ExtractConfig
		want   []string
		errMsg string
	}{
		{
			name: "default order",
			want: []string{"pdftotext", "rows", "plain", "textobj"},
		},
		{
			name: "custom order, case and duplicates",
			cfg:  types.ExtractConfig{Backends: []string{"TextObj", " rows ", "textobj"}},
			want: []string{"textobj", "rows"},
		},
		{
			name: "markitdown without runtime still listed",
			cfg:  types.ExtractConfig{Backends: []string{"markitdown", "plain"}},
			want: []string{"markitdown", "plain"},
		},
		{
			name:   "unknown backend",
			cfg:    types.ExtractConfig{Backends: []string{"rows", "tesseract"}},
			errMsg: `unknown extraction backend "tesseract"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := FromConfig(context.Background(), tt.cfg, &fakeExecutor{}, log)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownBackend)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ex.Backends())
		})
	}
}

func TestFromConfig_MarkitdownWithRuntime(t *testing.T) {
	exec := &fakeExecutor{
		paths:    map[string]bool{"podman": true},
		silentOK: map[string]bool{"podman": true},
	}
	ex, err := FromConfig(context.Background(), types.ExtractConfig{Backends: []string{"markitdown"}}, exec, nil)
	require.NoError(t, err)

	md, ok := ex.backends[0].(*MarkitdownBackend)
	require.True(t, ok)
	require.NotNil(t, md.runtime)
	assert.True(t, strings.EqualFold(md.runtime.Name(), "podman"))
}
