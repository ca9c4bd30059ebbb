package store

import (
	"context"

	"github.com/groblegark/kforms/internal/model"
)

// Store defines the persistence interface for forms, schemas, and records.
//
// Schema mutations are single-statement document updates: implementations
// must guarantee that concurrent CreateSchema calls for the same
// (tenant, record type) converge to exactly one row, and that
// PutSchemaField/RemoveSchemaField cannot lose concurrent updates to other
// fields of the same schema.
type Store interface {
	// Schemas
	GetSchema(ctx context.Context, tenantID, recordType string) (*model.Schema, error)
	// CreateSchema inserts the schema unless a row already exists for its
	// (tenant, record type), then returns the persisted row either way.
	CreateSchema(ctx context.Context, schema *model.Schema) (*model.Schema, error)
	// PutSchemaField inserts or replaces one property by name and, when
	// required is true, adds the name to the required set. Returns
	// sql.ErrNoRows if no schema row exists.
	PutSchemaField(ctx context.Context, tenantID, recordType, name string, def *model.FieldDefinition, required bool) (*model.Schema, error)
	// RemoveSchemaField deletes one property by name and filters it out of
	// the required set. Removing an absent field is a no-op; a missing
	// schema row is sql.ErrNoRows.
	RemoveSchemaField(ctx context.Context, tenantID, recordType, name string) (*model.Schema, error)

	// Forms
	GetForm(ctx context.Context, tenantID, formID string) (*model.Form, error)
	// ListForms returns all registrations for a tenant, default-type rows
	// first, then alphabetically by title.
	ListForms(ctx context.Context, tenantID string) ([]*model.Form, error)
	CreateForm(ctx context.Context, form *model.Form) error
	// UpsertDefaultForm creates a built-in registration if absent, else
	// refreshes its title and updated_at. Identity fields are never altered.
	UpsertDefaultForm(ctx context.Context, tenantID, formID, title string) error

	// Records
	CreateRecord(ctx context.Context, record *model.Record) error
	GetRecord(ctx context.Context, tenantID, recordType, id string) (*model.Record, error)
	ListRecords(ctx context.Context, tenantID, recordType string, filter model.RecordFilter) ([]*model.Record, int, error)
	UpdateRecord(ctx context.Context, record *model.Record) error
	DeleteRecord(ctx context.Context, tenantID, recordType, id string) error

	// Audit events
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, tenantID, recordType string) ([]*model.Event, error)

	// Export (all tenants)
	ListAllForms(ctx context.Context) ([]*model.Form, error)
	ListAllSchemas(ctx context.Context) ([]*model.Schema, error)
	ListAllRecords(ctx context.Context) ([]*model.Record, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
