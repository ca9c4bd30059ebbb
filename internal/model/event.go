package model

import (
	"encoding/json"
	"time"
)

// Event is an audit-trail entry for a schema, form, or record change.
type Event struct {
	ID         int64           `json:"id"`
	Topic      string          `json:"topic"`
	TenantID   string          `json:"tenant_id"`
	RecordType string          `json:"record_type,omitempty"`
	Actor      string          `json:"actor,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
