package model

import (
	"encoding/json"
	"time"
)

// Record is a single collected business record, validated against the
// tenant's schema for its record type. Fields is an open keyed bag stored
// as JSONB.
type Record struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"customerId"`
	RecordType string          `json:"recordType"`
	Name       string          `json:"name"`
	URI        string          `json:"uri,omitempty"`
	Fields     json.RawMessage `json:"fields,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RecordFilter narrows ListRecords results.
type RecordFilter struct {
	Limit  int
	Offset int
}
