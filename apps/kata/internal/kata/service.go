// Package kata orchestrates kata initialization: validate the request,
// resolve the template, collect its files, and only then touch the local
// filesystem. A failed lookup or traversal leaves the disk untouched.
package kata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
	"github.com/tilsley/kata/apps/kata/internal/templates"
)

// Kata names are short snake_case identifiers, usable directly as directory
// names and package names in most target languages.
var (
	nameRE  = regexp.MustCompile(`^[_a-z]+$`)
	spaceRE = regexp.MustCompile(`\s`)
)

// InvalidNameError reports a rejected kata name.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid kata name %q: %s", e.Name, e.Reason)
}

// ValidateName checks that name is a usable kata name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "empty"}
	case spaceRE.MatchString(name):
		return &InvalidNameError{Name: name, Reason: "contains spaces"}
	case !nameRE.MatchString(name):
		return &InvalidNameError{Name: name, Reason: "only lowercase letters and underscores are allowed"}
	}
	return nil
}

// TemplateResolver resolves a language/template pair to a template root path.
type TemplateResolver interface {
	Resolve(ctx context.Context, language, name string) (templates.Template, error)
}

// FileCollector returns every downloadable file under a template root path.
type FileCollector interface {
	CollectFiles(ctx context.Context, owner, repo, rootPath string) ([]gitrepo.TemplateFile, error)
}

// FileDownloader writes collected files under a destination directory.
type FileDownloader interface {
	Download(ctx context.Context, destDir string, files []gitrepo.TemplateFile) error
}

// InitRequest describes one kata initialization.
type InitRequest struct {
	ParentDir string
	Name      string
	Language  string
	Template  string // optional; single-template languages resolve without it
	GitInit   bool
}

// InitService wires the collaborators of kata initialization.
type InitService struct {
	Owner      string // templates repository owner
	Repo       string // templates repository name
	Resolver   TemplateResolver
	Collector  FileCollector
	Downloader FileDownloader
	// GitInit initializes a git repository in the kata directory. Optional;
	// only called when InitRequest.GitInit is set.
	GitInit func(dir string) error
	Log     *slog.Logger
}

// Init scaffolds a new kata directory and returns its path. The destination
// directory is created only after the complete file list has been collected;
// if downloading then fails midway, the partial directory is removed.
func (s *InitService) Init(ctx context.Context, req InitRequest) (string, error) {
	if err := s.validateParentDir(req.ParentDir); err != nil {
		return "", err
	}
	if err := ValidateName(req.Name); err != nil {
		return "", err
	}

	kataDir := filepath.Join(req.ParentDir, req.Name)
	if _, err := os.Stat(kataDir); err == nil {
		return "", fmt.Errorf("directory already exists: %s", kataDir)
	}

	tmpl, err := s.Resolver.Resolve(ctx, req.Language, req.Template)
	if err != nil {
		return "", err
	}

	log := s.Log
	if log == nil {
		log = slog.Default()
	}

	files, err := s.Collector.CollectFiles(ctx, s.Owner, s.Repo, tmpl.Path())
	if err != nil {
		return "", fmt.Errorf("collect template %s: %w", tmpl.Path(), err)
	}
	log.Info("template collected", "template", tmpl.Path(), "files", len(files))

	if err := os.MkdirAll(kataDir, 0o755); err != nil {
		return "", fmt.Errorf("create kata dir %s: %w", kataDir, err)
	}
	if err := s.Downloader.Download(ctx, kataDir, files); err != nil {
		// Never leave a half-written kata behind.
		if rmErr := os.RemoveAll(kataDir); rmErr != nil {
			log.Warn("cleanup of partial kata dir failed", "dir", kataDir, "error", rmErr)
		}
		return "", fmt.Errorf("download template files: %w", err)
	}

	if req.GitInit && s.GitInit != nil {
		if err := s.GitInit(kataDir); err != nil {
			return "", err
		}
	}

	return kataDir, nil
}

func (s *InitService) validateParentDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("invalid parent directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid parent directory %s: not a directory", dir)
	}
	return nil
}
