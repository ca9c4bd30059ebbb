// Package relay forwards record change notifications to the external
// webhook endpoints: one fixed endpoint for built-in record types and one
// for custom record types.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Change describes the kind of record mutation being relayed.
type Change string

const (
	ChangeCreated Change = "created"
	ChangeUpdated Change = "updated"
	ChangeDeleted Change = "deleted"
)

// Payload is the wire shape posted to a webhook endpoint. InstanceKey is
// attached only for custom record types and carries the record type key.
type Payload struct {
	Type        Change `json:"type"`
	Data        any    `json:"data"`
	CustomerID  string `json:"customerId"`
	InstanceKey string `json:"instanceKey,omitempty"`
}

// Relay posts record change payloads to the configured endpoints.
type Relay struct {
	defaultURL string
	customURL  string
	httpClient *http.Client
}

// New creates a relay. defaultURL receives events for built-in record
// types, customURL for tenant-created ones.
func New(defaultURL, customURL string) *Relay {
	return &Relay{
		defaultURL: defaultURL,
		customURL:  customURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send forwards one record change. isDefault selects the endpoint; for
// custom types the record type key is attached as the instance key.
func (r *Relay) Send(ctx context.Context, recordType string, isDefault bool, p Payload) error {
	url := r.customURL
	if isDefault {
		url = r.defaultURL
	}
	if !isDefault {
		p.InstanceKey = recordType
	}
	if url == "" {
		return fmt.Errorf("no webhook URL configured for record type %q", recordType)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook failed: %d %s: %s", resp.StatusCode, resp.Status, detail)
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
