package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/kforms/internal/model"
)

// HTTPClient implements FormsClient using the kforms HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check that HTTPClient implements FormsClient.
var _ FormsClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func schemaPath(tenantID, recordType string) string {
	return "/v1/schemas/" + url.PathEscape(recordType) + "/" + url.PathEscape(tenantID)
}

func recordsPath(tenantID, recordType string) string {
	return "/v1/records/" + url.PathEscape(recordType) + "/" + url.PathEscape(tenantID)
}

// --- Schemas ---

func (c *HTTPClient) GetSchema(ctx context.Context, tenantID, recordType string) (*model.JSONSchema, error) {
	var resp struct {
		Schema *model.JSONSchema `json:"schema"`
	}
	if err := c.doJSON(ctx, http.MethodGet, schemaPath(tenantID, recordType), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Schema, nil
}

func (c *HTTPClient) AddField(ctx context.Context, tenantID, recordType string, in model.FieldInput) (*model.JSONSchema, error) {
	var resp struct {
		Schema *model.JSONSchema `json:"schema"`
	}
	if err := c.doJSON(ctx, http.MethodPost, schemaPath(tenantID, recordType), in, &resp); err != nil {
		return nil, err
	}
	return resp.Schema, nil
}

func (c *HTTPClient) RemoveField(ctx context.Context, tenantID, recordType, fieldName string) (*model.JSONSchema, error) {
	q := url.Values{}
	q.Set("fieldName", fieldName)
	var resp struct {
		Schema *model.JSONSchema `json:"schema"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, schemaPath(tenantID, recordType)+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Schema, nil
}

// --- Forms ---

func (c *HTTPClient) ListForms(ctx context.Context, tenantID string) ([]*model.Form, error) {
	q := url.Values{}
	q.Set("customerId", tenantID)
	var resp struct {
		Forms []*model.Form `json:"forms"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/forms?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Forms, nil
}

// CreateForm registers a custom form. The response body is the bare
// registration, not an envelope.
func (c *HTTPClient) CreateForm(ctx context.Context, form *model.Form) (*model.Form, error) {
	var created model.Form
	if err := c.doJSON(ctx, http.MethodPost, "/v1/forms", form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// --- Records ---

func (c *HTTPClient) CreateRecord(ctx context.Context, record *model.Record) (*model.Record, error) {
	var resp struct {
		Record *model.Record `json:"record"`
	}
	if err := c.doJSON(ctx, http.MethodPost, recordsPath(record.TenantID, record.RecordType), record, &resp); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *HTTPClient) GetRecord(ctx context.Context, tenantID, recordType, id string) (*model.Record, error) {
	var resp struct {
		Record *model.Record `json:"record"`
	}
	if err := c.doJSON(ctx, http.MethodGet, recordsPath(tenantID, recordType)+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *HTTPClient) ListRecords(ctx context.Context, tenantID, recordType string, filter model.RecordFilter) (*ListRecordsResponse, error) {
	q := url.Values{}
	if filter.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", filter.Offset))
	}

	path := recordsPath(tenantID, recordType)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListRecordsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, record *model.Record) (*model.Record, error) {
	var resp struct {
		Record *model.Record `json:"record"`
	}
	path := recordsPath(record.TenantID, record.RecordType) + "/" + url.PathEscape(record.ID)
	if err := c.doJSON(ctx, http.MethodPatch, path, record, &resp); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, tenantID, recordType, id string) error {
	return c.doJSON(ctx, http.MethodDelete, recordsPath(tenantID, recordType)+"/"+url.PathEscape(id), nil, nil)
}

// --- Events ---

func (c *HTTPClient) GetEvents(ctx context.Context, tenantID, recordType string) ([]*model.Event, error) {
	q := url.Values{}
	q.Set("customerId", tenantID)
	if recordType != "" {
		q.Set("recordType", recordType)
	}
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/events?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
