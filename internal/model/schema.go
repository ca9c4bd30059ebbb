package model

import (
	"slices"
	"time"
)

// Schema is the persisted field schema for one (tenant, record type) pair.
// At most one row exists per pair; it is created lazily on first access and
// mutated field-by-field afterwards.
type Schema struct {
	TenantID   string     `json:"tenantId"`
	RecordType string     `json:"recordType"`
	Properties Properties `json:"properties"`
	Required   []string   `json:"required"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// JSONSchema is the wire shape returned to callers: a JSON-Schema-like
// object document.
type JSONSchema struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Required   []string   `json:"required"`
}

// Normalize strips empty enums from all properties and drops required
// entries that no longer have a matching property.
func (s *Schema) Normalize() {
	s.Properties.Normalize()
	if s.Properties == nil {
		s.Properties = Properties{}
	}
	s.Required = slices.DeleteFunc(s.Required, func(name string) bool {
		_, ok := s.Properties[name]
		return !ok
	})
	if s.Required == nil {
		s.Required = []string{}
	}
}

// JSONSchema renders the schema as the JSON-Schema-shaped document exposed
// over the API. The schema is normalized first.
func (s *Schema) JSONSchema() *JSONSchema {
	s.Normalize()
	return &JSONSchema{
		Type:       "object",
		Properties: s.Properties,
		Required:   s.Required,
	}
}
