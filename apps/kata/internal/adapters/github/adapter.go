// Package github implements the gitrepo.Client port using the official
// go-github library. Wire it up with an authenticated *github.Client from
// apps/kata/internal/platform/github.
package github

import (
	"context"
	"errors"
	"net/http"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
)

// Adapter wraps a go-github client and implements gitrepo.Client.
type Adapter struct {
	gh *gogithub.Client
}

// New creates an Adapter from an authenticated *github.Client.
func New(gh *gogithub.Client) *Adapter {
	return &Adapter{gh: gh}
}

// ListDir returns the immediate children of path via the GitHub contents API.
// The raw response is mapped to typed entries here, at the boundary, so
// callers never handle go-github shapes. A path that resolves to a single
// file is an error: this port lists directories.
func (a *Adapter) ListDir(ctx context.Context, owner, repo, path string) ([]gitrepo.DirEntry, error) {
	fc, dir, resp, err := a.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, &gitrepo.LookupError{
			Owner:    owner,
			Repo:     repo,
			Path:     path,
			NotFound: isNotFound(resp, err),
			Err:      err,
		}
	}
	if fc != nil {
		return nil, &gitrepo.LookupError{
			Owner: owner,
			Repo:  repo,
			Path:  path,
			Err:   errors.New("path is a file, not a directory"),
		}
	}

	entries := make([]gitrepo.DirEntry, 0, len(dir))
	for _, c := range dir {
		entries = append(entries, gitrepo.DirEntry{
			Name:        c.GetName(),
			Path:        c.GetPath(),
			Type:        c.GetType(),
			DownloadURL: c.GetDownloadURL(),
		})
	}
	return entries, nil
}

func isNotFound(resp *gogithub.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *gogithub.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil &&
		ghErr.Response.StatusCode == http.StatusNotFound
}
