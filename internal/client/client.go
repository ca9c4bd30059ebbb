// Package client provides a transport-agnostic interface for the kforms
// service and an HTTP/JSON implementation that talks to the kforms REST API.
package client

import (
	"context"

	"github.com/groblegark/kforms/internal/model"
)

// FormsClient is the interface that all kforms CLI commands use to communicate
// with the forms server. It is implemented by HTTPClient (default) and can be
// backed by any transport.
type FormsClient interface {
	// Schemas
	GetSchema(ctx context.Context, tenantID, recordType string) (*model.JSONSchema, error)
	AddField(ctx context.Context, tenantID, recordType string, in model.FieldInput) (*model.JSONSchema, error)
	RemoveField(ctx context.Context, tenantID, recordType, fieldName string) (*model.JSONSchema, error)

	// Forms
	ListForms(ctx context.Context, tenantID string) ([]*model.Form, error)
	CreateForm(ctx context.Context, form *model.Form) (*model.Form, error)

	// Records
	CreateRecord(ctx context.Context, record *model.Record) (*model.Record, error)
	GetRecord(ctx context.Context, tenantID, recordType, id string) (*model.Record, error)
	ListRecords(ctx context.Context, tenantID, recordType string, filter model.RecordFilter) (*ListRecordsResponse, error)
	UpdateRecord(ctx context.Context, record *model.Record) (*model.Record, error)
	DeleteRecord(ctx context.Context, tenantID, recordType, id string) error

	// Events
	GetEvents(ctx context.Context, tenantID, recordType string) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ListRecordsResponse is the response from ListRecords.
type ListRecordsResponse struct {
	Records []*model.Record `json:"records"`
	Total   int             `json:"total"`
}
