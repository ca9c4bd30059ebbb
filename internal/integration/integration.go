// Package integration talks to the external integration platform. The
// schema engine only needs one call from it: the idempotent get-or-create
// of a remote field-mapping resource before a custom form is committed
// locally.
package integration

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

// Client provisions remote resources on the integration platform.
type Client interface {
	// EnsureFieldMapping gets or creates the field-mapping resource for the
	// given connection and instance key. It must succeed before a custom
	// form registration is persisted locally.
	EnsureFieldMapping(ctx context.Context, integrationKey, instanceKey string) error
	Close() error
}

// HTTPClient implements Client against the integration platform's REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client targeting the given base URL. When token
// is non-empty, an Authorization header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// EnsureFieldMapping calls the platform's field-mapping get endpoint with
// autoCreate enabled, mirroring
// connection(key).fieldMapping("objects", {instanceKey}).get({autoCreate:true}).
func (c *HTTPClient) EnsureFieldMapping(ctx context.Context, integrationKey, instanceKey string) error {
	path := fmt.Sprintf("/connections/%s/field-mappings/objects/%s",
		url.PathEscape(integrationKey), url.PathEscape(instanceKey))

	body, err := json.Marshal(map[string]any{"autoCreate": true})
	if err != nil {
		return fmt.Errorf("marshal field-mapping request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build field-mapping request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("field-mapping request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("field-mapping request failed: %d %s: %s", resp.StatusCode, resp.Status, detail)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NoopClient is a Client that does nothing (used when the integration
// platform is not configured, e.g. in tests or local development).
type NoopClient struct{}

func (NoopClient) EnsureFieldMapping(ctx context.Context, integrationKey, instanceKey string) error {
	return nil
}

func (NoopClient) Close() error { return nil }
