// Package templates resolves kata languages and template names against the
// layout of the templates repository: top-level directories are languages,
// their subdirectories are named templates. A language directory holding
// only files is itself a single unnamed template.
package templates

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tilsley/kata/apps/kata/internal/gitrepo"
)

var (
	// ErrLanguageNotFound means the requested language has no directory in
	// the templates repository.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrTemplateNotFound means the language exists but the requested
	// template name does not.
	ErrTemplateNotFound = errors.New("template not found")
)

// Template identifies one resolved kata template. Name is empty when the
// language directory is itself the template.
type Template struct {
	Language string
	Name     string
}

// Path returns the template's root path inside the templates repository.
func (t Template) Path() string {
	if t.Name == "" {
		return t.Language
	}
	return t.Language + "/" + t.Name
}

// Catalog looks up languages and templates in a templates repository.
type Catalog struct {
	Client gitrepo.Client
	Owner  string
	Repo   string
}

// Languages returns the available languages, sorted.
func (c *Catalog) Languages(ctx context.Context) ([]string, error) {
	entries, err := c.Client.ListDir(ctx, c.Owner, c.Repo, "")
	if err != nil {
		return nil, fmt.Errorf("list templates repo %s/%s: %w", c.Owner, c.Repo, err)
	}

	var langs []string
	for _, e := range entries {
		if e.Type == gitrepo.TypeDir {
			langs = append(langs, e.Name)
		}
	}
	sort.Strings(langs)
	return langs, nil
}

// TemplatesFor returns the template names available for a language, sorted.
// A language directory with no subdirectories offers the single unnamed
// template, reported as an empty slice.
func (c *Catalog) TemplatesFor(ctx context.Context, language string) ([]string, error) {
	entries, err := c.Client.ListDir(ctx, c.Owner, c.Repo, language)
	if err != nil {
		if gitrepo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, language)
		}
		return nil, fmt.Errorf("list templates for %q: %w", language, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type == gitrepo.TypeDir {
			names = append(names, e.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve picks the template for a language and (optional) template name.
// When the language offers exactly one template it is chosen regardless of
// the requested name, matching how a kata author expects `kata init foo go`
// to work for single-template languages.
func (c *Catalog) Resolve(ctx context.Context, language, name string) (Template, error) {
	names, err := c.TemplatesFor(ctx, language)
	if err != nil {
		return Template{}, err
	}

	switch {
	case len(names) == 0:
		// Language dir holds files directly: the language is the template.
		return Template{Language: language}, nil
	case len(names) == 1:
		return Template{Language: language, Name: names[0]}, nil
	}

	for _, n := range names {
		if n == name {
			return Template{Language: language, Name: n}, nil
		}
	}
	if name == "" {
		return Template{}, fmt.Errorf("%w: language %q needs an explicit template, one of %v",
			ErrTemplateNotFound, language, names)
	}
	return Template{}, fmt.Errorf("%w: %q for language %q, available: %v",
		ErrTemplateNotFound, name, language, names)
}
