package github

import (
	"context"
	"strings"
	"sync"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
)

// InMem is an in-memory gitrepo.Client for unit tests. Seed it with files
// via SetFile; directories exist implicitly as path prefixes, the same way
// the real contents API derives them from the tree.
type InMem struct {
	mu    sync.Mutex
	files map[string][]string // "owner/repo" -> file paths
	urls  map[string]string   // "owner/repo/path" -> download URL
	calls int
}

// NewInMem creates an empty InMem client.
func NewInMem() *InMem {
	return &InMem{
		files: make(map[string][]string),
		urls:  make(map[string]string),
	}
}

// SetFile seeds a file at owner/repo/path with the given download URL.
func (m *InMem) SetFile(owner, repo, path, downloadURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	repoKey := owner + "/" + repo
	m.files[repoKey] = append(m.files[repoKey], path)
	m.urls[repoKey+"/"+path] = downloadURL
}

// Calls returns how many ListDir calls have been made.
func (m *InMem) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ListDir returns the immediate children of path, derived from the seeded
// file set. An empty repo or a path with no children yields NotFound, which
// matches how GitHub answers for paths that are not in the tree.
func (m *InMem) ListDir(_ context.Context, owner, repo, path string) ([]gitrepo.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	repoKey := owner + "/" + repo
	prefix := path
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[string]bool)
	var entries []gitrepo.DirEntry
	for _, p := range m.files[repoKey] {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		name, _, nested := strings.Cut(rest, "/")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		entry := gitrepo.DirEntry{Name: name, Type: gitrepo.TypeDir}
		if path == "" {
			entry.Path = name
		} else {
			entry.Path = path + "/" + name
		}
		if !nested {
			entry.Type = gitrepo.TypeFile
			entry.DownloadURL = m.urls[repoKey+"/"+p]
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, &gitrepo.LookupError{Owner: owner, Repo: repo, Path: path, NotFound: true}
	}
	return entries, nil
}
