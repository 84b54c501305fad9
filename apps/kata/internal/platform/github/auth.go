// Package github provides factory functions for creating authenticated
// GitHub API clients. Callers pass the returned *github.Client to the
// adapter in apps/kata/internal/adapters/github.
package github

import (
	"context"
	"net/http"
	"net/url"

	gogithub "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// NewTokenClient creates a *github.Client authenticated with a personal
// access token. An empty token yields an unauthenticated client, which is
// enough for public template repositories at GitHub's anonymous rate limit.
// Pass baseURL="" for the real GitHub API, or a custom URL (e.g.
// "http://localhost:9090") for the mock-templates server.
func NewTokenClient(token, baseURL string) *gogithub.Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	c := gogithub.NewClient(httpClient)
	applyBaseURL(c, baseURL)
	return c
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
