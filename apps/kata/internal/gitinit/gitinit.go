// Package gitinit turns a freshly scaffolded kata directory into a git
// repository with a single initial commit, so the first change to the kata
// shows up as a clean diff.
package gitinit

import (
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitialCommitMessage is used for the scaffold commit.
const InitialCommitMessage = "Scaffold kata"

// Init initializes a git repository at dir, stages everything, and creates
// the initial commit.
func Init(dir string) error {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return fmt.Errorf("git init %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage scaffolded files: %w", err)
	}

	// An explicit author keeps the commit working on machines with no
	// global git identity configured.
	_, err = wt.Commit(InitialCommitMessage, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "kata",
			Email: "kata@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}
