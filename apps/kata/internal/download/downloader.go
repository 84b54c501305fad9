// Package download writes a collected template file list to the local
// filesystem, fetching file contents over HTTP concurrently.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
)

// DefaultMaxInFlight bounds concurrent downloads when no limit is set.
const DefaultMaxInFlight = 8

// Downloader fetches template files and writes them under a destination
// directory. The zero value is usable.
type Downloader struct {
	// HTTPClient used for downloads; nil means http.DefaultClient.
	HTTPClient *http.Client
	// MaxInFlight bounds concurrent downloads; < 1 means DefaultMaxInFlight.
	MaxInFlight int
	// Log, when set, records each written file at debug level.
	Log *slog.Logger
}

// Download writes every file to destDir/<file.Path>, creating intermediate
// directories. It is all-or-nothing at the error level: the first failure
// aborts remaining downloads and is returned, leaving any files already
// written for the caller to clean up.
func (d *Downloader) Download(ctx context.Context, destDir string, files []gitrepo.TemplateFile) error {
	limit := d.MaxInFlight
	if limit < 1 {
		limit = DefaultMaxInFlight
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, f := range files {
		g.Go(func() error {
			return d.fetchOne(ctx, destDir, f)
		})
	}
	return g.Wait()
}

func (d *Downloader) fetchOne(ctx context.Context, destDir string, f gitrepo.TemplateFile) error {
	dest, err := destPath(destDir, f.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.DownloadURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", f.Path, err)
	}

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", f.DownloadURL, err)
	}
	defer func() { //nolint:errcheck // response body close errors are non-actionable after reading
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned %d", f.DownloadURL, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	if d.Log != nil {
		d.Log.Debug("downloaded", "path", f.Path)
	}
	return nil
}

// destPath joins destDir and a repository-relative path, rejecting paths
// that would escape destDir.
func destPath(destDir, relPath string) (string, error) {
	rel := filepath.FromSlash(relPath)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("refusing path outside destination: %q", relPath)
	}
	return filepath.Join(destDir, rel), nil
}
