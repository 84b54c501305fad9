package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	githubadapter "github.com/tilsley/kata/apps/kata/internal/adapters/github"
	"github.com/tilsley/kata/apps/kata/internal/templates"
)

func seededCatalog() *templates.Catalog {
	m := githubadapter.NewInMem()
	// go: files directly under the language dir (single unnamed template).
	m.SetFile("o", "tpl", "go/kata.go", "u")
	m.SetFile("o", "tpl", "go/kata_test.go", "u")
	// java: two named templates.
	m.SetFile("o", "tpl", "java/junit5/build.gradle", "u")
	m.SetFile("o", "tpl", "java/hamcrest/build.gradle", "u")
	// python: one named template.
	m.SetFile("o", "tpl", "python/pytest/kata.py", "u")
	return &templates.Catalog{Client: m, Owner: "o", Repo: "tpl"}
}

func TestLanguages(t *testing.T) {
	langs, err := seededCatalog().Languages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "java", "python"}, langs)
}

func TestTemplatesFor(t *testing.T) {
	c := seededCatalog()

	names, err := c.TemplatesFor(context.Background(), "java")
	require.NoError(t, err)
	assert.Equal(t, []string{"hamcrest", "junit5"}, names)

	// Files-only language has no named templates.
	names, err = c.TemplatesFor(context.Background(), "go")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestTemplatesFor_UnknownLanguage(t *testing.T) {
	_, err := seededCatalog().TemplatesFor(context.Background(), "rust")
	assert.ErrorIs(t, err, templates.ErrLanguageNotFound)
}

// TestResolve_SingleTemplate verifies the convenience rule: a language with
// exactly one template resolves without naming it.
func TestResolve_SingleTemplate(t *testing.T) {
	tmpl, err := seededCatalog().Resolve(context.Background(), "python", "")
	require.NoError(t, err)
	assert.Equal(t, "python/pytest", tmpl.Path())
}

// TestResolve_FilesOnlyLanguage verifies that a language dir holding files
// directly is itself the template.
func TestResolve_FilesOnlyLanguage(t *testing.T) {
	tmpl, err := seededCatalog().Resolve(context.Background(), "go", "")
	require.NoError(t, err)
	assert.Equal(t, "go", tmpl.Path())
}

func TestResolve_NamedTemplate(t *testing.T) {
	tmpl, err := seededCatalog().Resolve(context.Background(), "java", "junit5")
	require.NoError(t, err)
	assert.Equal(t, "java/junit5", tmpl.Path())
}

// TestResolve_AmbiguousWithoutName verifies that a multi-template language
// requires an explicit template name.
func TestResolve_AmbiguousWithoutName(t *testing.T) {
	_, err := seededCatalog().Resolve(context.Background(), "java", "")
	require.ErrorIs(t, err, templates.ErrTemplateNotFound)
	assert.ErrorContains(t, err, "junit5")
}

func TestResolve_UnknownTemplate(t *testing.T) {
	_, err := seededCatalog().Resolve(context.Background(), "java", "testng")
	require.ErrorIs(t, err, templates.ErrTemplateNotFound)
	assert.ErrorContains(t, err, "testng")
}

func TestResolve_UnknownLanguage(t *testing.T) {
	_, err := seededCatalog().Resolve(context.Background(), "rust", "")
	assert.ErrorIs(t, err, templates.ErrLanguageNotFound)
}
