// Package gitrepo defines the port through which kata talks to a git hosting
// provider, plus the types flowing across it. Adapters live in
// internal/adapters; everything above this package handles typed entries only,
// never raw API shapes.
package gitrepo

import "context"

// Entry types returned by a directory listing.
const (
	TypeFile = "file"
	TypeDir  = "dir"
)

// DirEntry is a file or directory returned by a git hosting provider
// directory listing.
type DirEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file" or "dir"
	DownloadURL string `json:"download_url,omitempty"`
}

// TemplateFile is one downloadable file discovered in a template tree.
// Path is the full path from the repository root and doubles as the
// relative destination path when the file is written locally.
type TemplateFile struct {
	Path        string
	DownloadURL string
}

// Client is the port the walker and the template catalog depend on to list
// remote directories. One call is one network round trip; recursion and
// retries are caller concerns.
type Client interface {
	ListDir(ctx context.Context, owner, repo, path string) ([]DirEntry, error)
}
