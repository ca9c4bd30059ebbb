package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/groblegark/kforms/internal/catalog"
	"github.com/groblegark/kforms/internal/events"
	"github.com/groblegark/kforms/internal/model"
)

// requireForm verifies the (tenant, record type) pair is a registered form.
// Every schema operation runs this before touching the schema store: schema
// mutation is never permitted for an unregistered record type.
func (s *FormsServer) requireForm(ctx context.Context, tenantID, recordType string) error {
	_, err := s.store.GetForm(ctx, tenantID, recordType)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundError("form not found")
	}
	if err != nil {
		return fmt.Errorf("get form: %w", err)
	}
	return nil
}

// getSchema returns the schema for a registered record type, creating it
// from the catalog (or the minimal fallback) on first access.
func (s *FormsServer) getSchema(ctx context.Context, tenantID, recordType string) (*model.JSONSchema, error) {
	recordType = strings.ToLower(recordType)

	if err := s.requireForm(ctx, tenantID, recordType); err != nil {
		return nil, err
	}

	schema, err := s.getOrCreateSchema(ctx, tenantID, recordType)
	if err != nil {
		return nil, err
	}
	return schema.JSONSchema(), nil
}

// getOrCreateSchema returns the persisted schema row, instantiating one on
// first access. Creation goes through the store's upsert so concurrent
// callers for the same key converge on a single row.
func (s *FormsServer) getOrCreateSchema(ctx context.Context, tenantID, recordType string) (*model.Schema, error) {
	schema, err := s.store.GetSchema(ctx, tenantID, recordType)
	if err == nil {
		return schema, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get schema: %w", err)
	}

	entry, ok := s.catalog.Lookup(recordType)
	source := "catalog"
	if !ok {
		slog.Warn("no default schema for record type, using minimal fallback",
			"tenant", tenantID, "record_type", recordType)
		entry = catalog.MinimalEntry()
		source = "fallback"
	}

	schema, err = s.store.CreateSchema(ctx, &model.Schema{
		TenantID:   tenantID,
		RecordType: recordType,
		Properties: entry.Properties,
		Required:   entry.Required,
	})
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicSchemaCreated, tenantID, recordType,
		events.SchemaCreated{Schema: schema, Source: source})
	if source == "fallback" {
		s.recordAndPublish(ctx, events.TopicSchemaFallback, tenantID, recordType,
			events.SchemaFallback{TenantID: tenantID, RecordType: recordType})
	}

	return schema, nil
}

// addField validates and adds (or replaces) one field on a registered
// record type's schema. The first add on an unseen record type seeds the
// schema from the catalog so it still starts from the correct base.
func (s *FormsServer) addField(ctx context.Context, tenantID, recordType string, in model.FieldInput) (*model.JSONSchema, error) {
	recordType = strings.ToLower(recordType)

	if err := model.ValidateFieldInput(in); err != nil {
		return nil, err
	}

	if err := s.requireForm(ctx, tenantID, recordType); err != nil {
		return nil, err
	}

	if _, err := s.getOrCreateSchema(ctx, tenantID, recordType); err != nil {
		return nil, err
	}

	def := model.NewFieldDefinition(in)
	schema, err := s.store.PutSchemaField(ctx, tenantID, recordType, in.Name, def, in.Required)
	if err != nil {
		return nil, fmt.Errorf("put schema field: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicSchemaFieldAdded, tenantID, recordType, events.SchemaFieldAdded{
		TenantID:   tenantID,
		RecordType: recordType,
		Name:       in.Name,
		Field:      def,
		Required:   in.Required,
	})

	return schema.JSONSchema(), nil
}

// removeField deletes one field from a registered record type's schema and
// filters it out of the required set. A missing field is a no-op; a missing
// schema row is not found.
func (s *FormsServer) removeField(ctx context.Context, tenantID, recordType, fieldName string) (*model.JSONSchema, error) {
	recordType = strings.ToLower(recordType)

	if strings.TrimSpace(fieldName) == "" {
		return nil, inputError("fieldName is required")
	}

	if err := s.requireForm(ctx, tenantID, recordType); err != nil {
		return nil, err
	}

	schema, err := s.store.RemoveSchemaField(ctx, tenantID, recordType, fieldName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("schema not found")
	}
	if err != nil {
		return nil, fmt.Errorf("remove schema field: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicSchemaFieldRemoved, tenantID, recordType, events.SchemaFieldRemoved{
		TenantID:   tenantID,
		RecordType: recordType,
		Name:       fieldName,
	})

	return schema.JSONSchema(), nil
}
