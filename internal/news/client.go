package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/carhub-app/carhub-backend/pkg/errors"
)

const (
	responseBodyReadLimit int64 = 1024

	defaultTimeout = 10 * time.Second
)

var errFeedURLRequired = errors.New("news feed url is required")

// Article is a single automotive news item from the upstream feed.
type Article struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Client fetches articles from the configured news feed.
type Client struct {
	httpClient *http.Client
	feedURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds a news feed client for the given URL.
func NewClient(feedURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(feedURL)
	if trimmed == "" {
		return nil, errFeedURLRequired
	}

	client := &Client{
		feedURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Fetch pulls the latest articles from the feed, newest first as served.
func (c *Client) Fetch(ctx context.Context, limit int) ([]Article, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "news client not configured")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build feed request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute feed request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "feed request failed")
	}

	var apiResp struct {
		Articles []struct {
			Title       string    `json:"title"`
			URL         string    `json:"url"`
			Source      string    `json:"source"`
			Summary     string    `json:"summary"`
			PublishedAt time.Time `json:"published_at"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode feed response")
	}

	articles := make([]Article, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      a.Source,
			Summary:     a.Summary,
			PublishedAt: a.PublishedAt,
		})
		if limit > 0 && len(articles) >= limit {
			break
		}
	}

	return articles, nil
}
