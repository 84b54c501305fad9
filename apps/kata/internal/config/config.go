// Package config loads and stores the kata CLI configuration, including the
// login token, as a YAML file under the user's config directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTemplatesRepo is the templates repository used when none is
// configured.
const DefaultTemplatesRepo = "tilsley/kata-templates"

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "KATA_CONFIG"

// Auth holds stored credentials.
type Auth struct {
	Token string `yaml:"token,omitempty"`
}

// Config is the persisted CLI configuration.
type Config struct {
	// TemplatesRepo is the "owner/name" of the GitHub repository holding
	// kata templates.
	TemplatesRepo string `yaml:"templates_repo"`
	// GithubAPIURL points the CLI at a non-default API endpoint, e.g. the
	// mock-templates server. Empty means the real GitHub API.
	GithubAPIURL string `yaml:"github_api_url,omitempty"`
	Auth         Auth   `yaml:"auth,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{TemplatesRepo: DefaultTemplatesRepo}
}

// DefaultPath returns the config file location: $KATA_CONFIG if set,
// otherwise <user config dir>/kata/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, "kata", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields defaults, not an
// error, so the CLI works out of the box.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TemplatesRepo == "" {
		cfg.TemplatesRepo = DefaultTemplatesRepo
	}
	return cfg, nil
}

// Save writes the config to path with owner-only permissions (it may hold a
// token), creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Token returns the effective GitHub token: the GITHUB_TOKEN environment
// variable when set, otherwise the stored one.
func (c *Config) Token() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return c.Auth.Token
}

// SplitTemplatesRepo splits TemplatesRepo into owner and repository name.
func (c *Config) SplitTemplatesRepo() (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(c.TemplatesRepo, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid templates_repo %q, want \"owner/name\"", c.TemplatesRepo)
	}
	return owner, repo, nil
}
