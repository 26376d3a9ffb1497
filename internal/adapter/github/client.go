// Package github is an HTTP client for the GitHub pull request API. It
// retrieves diffs and changed-file lists; it never writes back to GitHub.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	llmhttp "github.com/bkyoung/review-assistant/internal/adapter/llm/http"
	"github.com/bkyoung/review-assistant/internal/domain"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second

	diffMediaType = "application/vnd.github.v3.diff"
	jsonMediaType = "application/vnd.github+json"
	userAgent     = "review-assistant"

	providerName = "github"
)

// Client fetches pull request data from the GitHub REST API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a GitHub API client. An empty token degrades to
// unauthenticated, rate-limited calls.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	if url != "" {
		c.baseURL = url
	}
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
}

// FetchDiff returns the unified diff for a pull request. repo is the
// "owner/name" form.
func (c *Client) FetchDiff(ctx context.Context, repo string, number int) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.baseURL, repo, number)

	body, err := c.get(ctx, url, diffMediaType)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ListFiles returns the per-file change records of a pull request.
func (c *Client) ListFiles(ctx context.Context, repo string, number int) ([]domain.ChangedFile, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d/files", c.baseURL, repo, number)

	body, err := c.get(ctx, url, jsonMediaType)
	if err != nil {
		return nil, err
	}

	var files []domain.ChangedFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return files, nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, llmhttp.NewTimeoutError(providerName, "request timed out")
		}
		return nil, llmhttp.NewTimeoutError(providerName, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapHTTPError(resp.StatusCode, body)
	}
	return body, nil
}

func mapHTTPError(statusCode int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", statusCode)
	if len(body) > 0 && len(body) < 200 {
		message = string(body)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llmhttp.NewAuthenticationError(providerName, message)
	case http.StatusNotFound:
		return llmhttp.NewNotFoundError(providerName, message)
	case http.StatusTooManyRequests:
		return llmhttp.NewRateLimitError(providerName, message)
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Provider:   providerName,
		}
	}
}
