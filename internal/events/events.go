package events

import (
	"context"

	"github.com/groblegark/kforms/internal/model"
)

// Event topic constants
const (
	TopicSchemaCreated      = "forms.schema.created"
	TopicSchemaFallback     = "forms.schema.fallback"
	TopicSchemaFieldAdded   = "forms.schema.field_added"
	TopicSchemaFieldRemoved = "forms.schema.field_removed"

	TopicFormCreated = "forms.form.created"

	TopicRecordCreated = "forms.record.created"
	TopicRecordUpdated = "forms.record.updated"
	TopicRecordDeleted = "forms.record.deleted"
)

// Event types

type SchemaCreated struct {
	Schema *model.Schema `json:"schema"`
	// Source is "catalog" when seeded from the default catalog, or
	// "fallback" when the minimal {id, name} schema was used.
	Source string `json:"source"`
}

// SchemaFallback signals that a schema was instantiated without a catalog
// entry. Operators should treat a stream of these as a misconfiguration.
type SchemaFallback struct {
	TenantID   string `json:"customerId"`
	RecordType string `json:"recordType"`
}

type SchemaFieldAdded struct {
	TenantID   string                 `json:"customerId"`
	RecordType string                 `json:"recordType"`
	Name       string                 `json:"name"`
	Field      *model.FieldDefinition `json:"field"`
	Required   bool                   `json:"required"`
}

type SchemaFieldRemoved struct {
	TenantID   string `json:"customerId"`
	RecordType string `json:"recordType"`
	Name       string `json:"name"`
}

type FormCreated struct {
	Form *model.Form `json:"form"`
}

type RecordCreated struct {
	Record *model.Record `json:"record"`
}

type RecordUpdated struct {
	Record *model.Record `json:"record"`
}

type RecordDeleted struct {
	TenantID   string `json:"customerId"`
	RecordType string `json:"recordType"`
	RecordID   string `json:"recordId"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
