package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/liftium/internal/models"
)

// HTTPClient implements DataSource by calling the Liftium REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// LoadDataset fetches the caller's dataset export. The remote server decides
// whose data it is from the tailnet identity, so userID is only checked
// against the answer when set.
func (c *HTTPClient) LoadDataset(ctx context.Context, userID string) (*models.Dataset, error) {
	body, err := c.get(ctx, "/api/v1/dataset", nil)
	if err != nil {
		return nil, err
	}
	var ds models.Dataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, fmt.Errorf("httpclient: decode dataset: %w", err)
	}
	if userID != "" {
		for _, u := range ds.Users {
			if u.ID != userID {
				return nil, fmt.Errorf("httpclient: server returned data for user %s, want %s", u.ID, userID)
			}
		}
	}
	return &ds, nil
}
