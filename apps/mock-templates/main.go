// mock-templates emulates the slice of the GitHub API that kata uses: the
// contents endpoint for directory listings and a raw endpoint that the
// generated download URLs point at. Point the CLI at it with
// github_api_url: http://localhost:9090 for offline development.
package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/kata/pkg/logging"
)

// contentEntry is one element of a GitHub-shaped directory listing.
type contentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file" or "dir"
	DownloadURL string `json:"download_url,omitempty"`
}

// store holds template file content keyed by "owner/repo".
type store struct {
	mu      sync.RWMutex
	baseURL string
	files   map[string]map[string]string // repo key → path → content
}

func newStore(baseURL string) *store {
	return &store{
		baseURL: baseURL,
		files:   make(map[string]map[string]string),
	}
}

func (s *store) getFile(owner, repo, path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[owner+"/"+repo][path]
	return content, ok
}

// listDir mirrors GitHub's GET /repos/:owner/:repo/contents/:path when
// :path is a directory: immediate children only, derived from the flat file
// map, with download URLs on file entries.
func (s *store) listDir(owner, repo, dirPath string) []contentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files := s.files[owner+"/"+repo]
	if files == nil {
		return nil
	}

	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	var entries []contentEntry
	for path := range files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		name, _, nested := strings.Cut(path[len(prefix):], "/")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		entry := contentEntry{Name: name, Path: prefix + name, Type: "dir"}
		if !nested {
			entry.Type = "file"
			entry.DownloadURL = s.rawURL(owner, repo, entry.Path)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func (s *store) rawURL(owner, repo, path string) string {
	return fmt.Sprintf("%s/raw/%s/%s/%s", s.baseURL, owner, repo, path)
}

func main() {
	log := logging.New()

	port := envOr("PORT", "9090")
	baseURL := envOr("PUBLIC_URL", "http://localhost:"+port)

	s := newStore(baseURL)
	seedTemplates(s)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	registerRoutes(r, s)

	log.Info("mock-templates starting", "port", port, "baseURL", baseURL)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func registerRoutes(r *gin.Engine, s *store) {
	// Contents endpoint (GitHub-compatible shape). Returns a single file
	// object for exact path matches, or a directory listing array when the
	// path is a directory prefix, mirroring the real API.
	r.GET("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		if content, ok := s.getFile(owner, repo, path); ok {
			c.JSON(http.StatusOK, gin.H{
				"name":         path[strings.LastIndex(path, "/")+1:],
				"path":         path,
				"type":         "file",
				"content":      base64.StdEncoding.EncodeToString([]byte(content)),
				"encoding":     "base64",
				"download_url": s.rawURL(owner, repo, path),
			})
			return
		}

		if entries := s.listDir(owner, repo, path); len(entries) > 0 {
			c.JSON(http.StatusOK, entries)
			return
		}

		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("path %q not found in %s/%s", path, owner, repo),
		})
	})

	// Raw file bytes; every seeded entry's download_url points here.
	r.GET("/raw/:owner/:repo/*path", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		content, ok := s.getFile(owner, repo, path)
		if !ok {
			c.String(http.StatusNotFound, "not found")
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
