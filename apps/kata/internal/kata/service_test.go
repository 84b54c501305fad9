package kata_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
	"github.com/tilsley/kata/apps/kata/internal/kata"
	"github.com/tilsley/kata/apps/kata/internal/templates"
)

type fakeResolver struct {
	tmpl templates.Template
	err  error
}

func (f *fakeResolver) Resolve(context.Context, string, string) (templates.Template, error) {
	return f.tmpl, f.err
}

type fakeCollector struct {
	files []gitrepo.TemplateFile
	err   error
}

func (f *fakeCollector) CollectFiles(context.Context, string, string, string) ([]gitrepo.TemplateFile, error) {
	return f.files, f.err
}

// fakeDownloader writes each file's path as its content, or fails.
type fakeDownloader struct {
	err error
}

func (f *fakeDownloader) Download(_ context.Context, destDir string, files []gitrepo.TemplateFile) error {
	for _, file := range files {
		dest := filepath.Join(destDir, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(file.Path), 0o644); err != nil {
			return err
		}
	}
	return f.err
}

func service(c *fakeCollector, d *fakeDownloader) *kata.InitService {
	return &kata.InitService{
		Owner:      "o",
		Repo:       "tpl",
		Resolver:   &fakeResolver{tmpl: templates.Template{Language: "go"}},
		Collector:  c,
		Downloader: d,
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		kata    string
		wantErr string
	}{
		{"valid", "fizzbuzz", ""},
		{"valid with underscore", "fizz_buzz", ""},
		{"empty", "", "empty"},
		{"spaces", "fizz buzz", "contains spaces"},
		{"uppercase", "FizzBuzz", "lowercase"},
		{"dashes", "fizz-buzz", "lowercase"},
		{"digits", "kata2", "lowercase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := kata.ValidateName(tt.kata)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var ine *kata.InvalidNameError
			require.ErrorAs(t, err, &ine)
			assert.Contains(t, ine.Reason, tt.wantErr)
		})
	}
}

func TestInit_ScaffoldsKata(t *testing.T) {
	parent := t.TempDir()
	collector := &fakeCollector{files: []gitrepo.TemplateFile{
		{Path: "go/kata.go", DownloadURL: "u1"},
		{Path: "go/sub/util.go", DownloadURL: "u2"},
	}}
	svc := service(collector, &fakeDownloader{})

	dir, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: parent, Name: "fizzbuzz", Language: "go",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "fizzbuzz"), dir)
	assert.FileExists(t, filepath.Join(dir, "go", "kata.go"))
	assert.FileExists(t, filepath.Join(dir, "go", "sub", "util.go"))
}

func TestInit_ParentDirMissing(t *testing.T) {
	svc := service(&fakeCollector{}, &fakeDownloader{})

	_, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: "/does/not/exist", Name: "fizzbuzz", Language: "go",
	})
	assert.ErrorContains(t, err, "invalid parent directory")
}

func TestInit_ExistingDestination(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "fizzbuzz"), 0o755))
	svc := service(&fakeCollector{}, &fakeDownloader{})

	_, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: parent, Name: "fizzbuzz", Language: "go",
	})
	assert.ErrorContains(t, err, "already exists")
}

// TestInit_CollectorFailure verifies that a failed traversal leaves the
// filesystem untouched: no kata directory, no files.
func TestInit_CollectorFailure(t *testing.T) {
	parent := t.TempDir()
	collector := &fakeCollector{err: errors.New("rate limited")}
	svc := service(collector, &fakeDownloader{})

	_, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: parent, Name: "fizzbuzz", Language: "go",
	})
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(parent, "fizzbuzz"))
}

// TestInit_DownloadFailure verifies that a partially written kata directory
// is removed when downloading fails.
func TestInit_DownloadFailure(t *testing.T) {
	parent := t.TempDir()
	collector := &fakeCollector{files: []gitrepo.TemplateFile{{Path: "go/kata.go", DownloadURL: "u"}}}
	svc := service(collector, &fakeDownloader{err: errors.New("connection reset")})

	_, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: parent, Name: "fizzbuzz", Language: "go",
	})
	require.ErrorContains(t, err, "connection reset")
	assert.NoDirExists(t, filepath.Join(parent, "fizzbuzz"))
}

// TestInit_GitInitHook verifies the optional git hook runs against the new
// kata directory, and only when requested.
func TestInit_GitInitHook(t *testing.T) {
	parent := t.TempDir()
	var gotDir string
	svc := service(&fakeCollector{}, &fakeDownloader{})
	svc.GitInit = func(dir string) error {
		gotDir = dir
		return nil
	}

	_, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: parent, Name: "with_git", Language: "go", GitInit: true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "with_git"), gotDir)

	gotDir = ""
	_, err = svc.Init(context.Background(), kata.InitRequest{
		ParentDir: parent, Name: "without_git", Language: "go",
	})
	require.NoError(t, err)
	assert.Empty(t, gotDir)
}
