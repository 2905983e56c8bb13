package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const contentPath = "/rest/api/content"

// Config configures a Client. BaseURL and APIToken are required.
type Config struct {
	// BaseURL is the wiki root, e.g. "https://wiki.example.com".
	BaseURL string
	// Username for basic auth. Empty means bearer-token auth.
	Username string
	// APIToken is the basic-auth password or bearer token.
	APIToken string
	// SpaceKey scopes search and page creation to one space.
	SpaceKey string
	// HTTPClient overrides the default client (useful for tests).
	HTTPClient *http.Client
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("wiki: base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("wiki: invalid base URL: %w", err)
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return fmt.Errorf("wiki: API token is required")
	}
	return nil
}

// Client talks to one wiki store. Safe for concurrent use.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a Client from an explicit Config.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{config: cfg, http: httpClient}, nil
}

// SpaceKey returns the space the client is scoped to.
func (c *Client) SpaceKey() string {
	return c.config.SpaceKey
}

// FetchPage returns the page with its current body, version and space.
func (c *Client) FetchPage(ctx context.Context, id string) (*Page, error) {
	q := url.Values{}
	q.Set("expand", "body.storage,version,space")

	var page Page
	if err := c.doJSON(ctx, http.MethodGet, contentPath+"/"+url.PathEscape(id), q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type writePayload struct {
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Space   *spaceRef      `json:"space,omitempty"`
	Body    Body           `json:"body"`
	Version *versionUpdate `json:"version,omitempty"`
	Parents []contentRef   `json:"ancestors,omitempty"`
}

type spaceRef struct {
	Key string `json:"key"`
}

type versionUpdate struct {
	Number int `json:"number"`
}

type contentRef struct {
	ID string `json:"id"`
}

// WritePage updates a page's title and body. expectedPriorVersion is the
// version the caller observed; the store is asked to advance the page to
// expectedPriorVersion+1, so a concurrent write that already consumed
// that number makes the store reject this one. That rejection comes back
// as a *RemoteError.
func (c *Client) WritePage(ctx context.Context, id, title, body string, expectedPriorVersion int) (*Page, error) {
	payload := writePayload{
		Type:  "page",
		Title: title,
		Body: Body{Storage: Storage{
			Value:          body,
			Representation: "storage",
		}},
		Version: &versionUpdate{Number: expectedPriorVersion + 1},
	}

	var page Page
	if err := c.doJSON(ctx, http.MethodPut, contentPath+"/"+url.PathEscape(id), nil, payload, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePage creates a page in the configured space. parentID may be
// empty for a top-level page.
func (c *Client) CreatePage(ctx context.Context, title, body, parentID string) (*Page, error) {
	payload := writePayload{
		Type:  "page",
		Title: title,
		Space: &spaceRef{Key: c.config.SpaceKey},
		Body: Body{Storage: Storage{
			Value:          body,
			Representation: "storage",
		}},
	}
	if parentID != "" {
		payload.Parents = []contentRef{{ID: parentID}}
	}

	var page Page
	if err := c.doJSON(ctx, http.MethodPost, contentPath, nil, payload, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("wiki: encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	target := c.config.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("wiki: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: opName(method, path), Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: opName(method, path), StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(opName(method, path), resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("wiki: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.APIToken)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIToken)
}

func opName(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
