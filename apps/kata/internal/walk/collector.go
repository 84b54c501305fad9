// Package walk turns a remote directory tree into a flat list of
// downloadable files. Directory listing is the dominant latency cost (one
// round trip per directory), so sibling directories are expanded
// concurrently: wall-clock latency tracks the tree's depth, not its
// directory count.
package walk

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
)

// DefaultMaxInFlight bounds concurrent ListDir calls when no explicit limit
// is given. Well under GitHub's secondary rate limit for concurrent requests.
const DefaultMaxInFlight = 8

// TraversalError reports a listing failure during recursive expansion,
// carrying the sub-path that was being expanded.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string { return fmt.Sprintf("expand %s: %v", e.Path, e.Err) }

func (e *TraversalError) Unwrap() error { return e.Err }

// Collector recursively collects every file reachable under a root path.
type Collector struct {
	client gitrepo.Client
	sem    *semaphore.Weighted
}

// NewCollector creates a Collector over the given client. maxInFlight bounds
// concurrent listing calls across the whole traversal; values < 1 use
// DefaultMaxInFlight.
func NewCollector(client gitrepo.Client, maxInFlight int64) *Collector {
	if maxInFlight < 1 {
		maxInFlight = DefaultMaxInFlight
	}
	return &Collector{client: client, sem: semaphore.NewWeighted(maxInFlight)}
}

// CollectFiles returns every file reachable by recursively listing from
// rootPath, in no particular order. Each file appears exactly once. Any
// listing failure aborts the whole collection: no partial result is
// returned, and expansions not yet started are cancelled.
func (c *Collector) CollectFiles(ctx context.Context, owner, repo, rootPath string) ([]gitrepo.TemplateFile, error) {
	return c.collect(ctx, owner, repo, rootPath)
}

func (c *Collector) collect(ctx context.Context, owner, repo, path string) ([]gitrepo.TemplateFile, error) {
	entries, err := c.listDir(ctx, owner, repo, path)
	if err != nil {
		return nil, err
	}

	// Partition: files go straight into the result, directories fan out.
	var files []gitrepo.TemplateFile
	var dirs []gitrepo.DirEntry
	for _, e := range entries {
		switch e.Type {
		case gitrepo.TypeFile:
			files = append(files, gitrepo.TemplateFile{Path: e.Path, DownloadURL: e.DownloadURL})
		case gitrepo.TypeDir:
			dirs = append(dirs, e)
		}
	}
	if len(dirs) == 0 {
		return files, nil
	}

	// Expand every subdirectory concurrently and join before merging. The
	// semaphore bounds listing calls only, never a parent waiting on its
	// children, so the join cannot starve the pool.
	g, gctx := errgroup.WithContext(ctx)
	subtrees := make([][]gitrepo.TemplateFile, len(dirs))
	for i, d := range dirs {
		g.Go(func() error {
			sub := childPath(path, d.Name)
			collected, err := c.collect(gctx, owner, repo, sub)
			if err != nil {
				return wrapTraversal(sub, err)
			}
			subtrees[i] = collected
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sub := range subtrees {
		files = append(files, sub...)
	}
	return files, nil
}

func (c *Collector) listDir(ctx context.Context, owner, repo, path string) ([]gitrepo.DirEntry, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)
	return c.client.ListDir(ctx, owner, repo, path)
}

// childPath joins a parent path and an entry name. An empty parent (the
// repository root) yields the bare name, with no leading slash.
func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// wrapTraversal tags err with the sub-path being expanded. Errors bubbling
// up from deeper levels are already tagged with the innermost path, the one
// worth reporting, and pass through unchanged.
func wrapTraversal(path string, err error) error {
	var te *TraversalError
	if errors.As(err, &te) {
		return err
	}
	return &TraversalError{Path: path, Err: err}
}
