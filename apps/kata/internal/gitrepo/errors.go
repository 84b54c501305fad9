package gitrepo

import (
	"errors"
	"fmt"
)

// LookupError reports a failed directory-listing call. NotFound is set when
// the provider answered 404, so callers can tell a missing path from a
// transport or auth failure. Current callers abort on both; the distinction
// is carried for the ones that want to treat "path not found" as "no files".
type LookupError struct {
	Owner    string
	Repo     string
	Path     string
	NotFound bool
	Err      error
}

func (e *LookupError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("list %s/%s/%s: path not found", e.Owner, e.Repo, e.Path)
	}
	return fmt.Sprintf("list %s/%s/%s: %v", e.Owner, e.Repo, e.Path, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a LookupError for a missing path.
func IsNotFound(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.NotFound
}
