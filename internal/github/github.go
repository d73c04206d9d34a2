package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultAPIURL = "https://api.github.com"

// Client is a thin wrapper around the GitHub REST contents API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// Entry is one item of a directory listing.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"` // "file", "dir", "symlink", "submodule"
	DownloadURL string `json:"download_url"`
}

func (e Entry) IsFile() bool { return e.Type == "file" }
func (e Entry) IsDir() bool  { return e.Type == "dir" }

func (e Entry) displayPath() string {
	if e.Path != "" {
		return e.Path
	}
	return e.Name
}

// StatusError is returned when GitHub answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API returned %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// ListContents returns the entries of dir ("" for the repository root).
// Only the first page is returned.
func (c *Client) ListContents(ctx context.Context, owner, repo, dir string) ([]Entry, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	if dir != "" {
		endpoint += "/" + escapePath(dir)
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing listing of %s/%s/%s: %w", owner, repo, dir, err)
	}
	return entries, nil
}

// FetchRaw downloads the raw text behind a download URL.
func (c *Client) FetchRaw(ctx context.Context, downloadURL string) (string, error) {
	body, err := c.get(ctx, downloadURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: truncate(string(respBody), 200)}
	}
	return respBody, nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n]
	}
	return s
}
