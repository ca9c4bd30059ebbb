package server

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"time"

	"github.com/groblegark/kforms/internal/model"
	"github.com/groblegark/kforms/internal/store"
)

// mockStore is an in-memory store for server tests. Schema field mutations
// mirror the single-statement semantics of the SQL implementation.
type mockStore struct {
	schemas map[string]*model.Schema
	forms   map[string]*model.Form
	records map[string]*model.Record
	events  []*model.Event
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		schemas: make(map[string]*model.Schema),
		forms:   make(map[string]*model.Form),
		records: make(map[string]*model.Record),
	}
}

func schemaKey(tenantID, recordType string) string { return tenantID + "|" + recordType }

func recordKey(tenantID, recordType, id string) string {
	return tenantID + "|" + recordType + "|" + id
}

// registerForm seeds a form registration directly, bypassing validation.
func (m *mockStore) registerForm(tenantID, formID, title string, typ model.FormType) {
	now := time.Now().UTC()
	m.forms[schemaKey(tenantID, formID)] = &model.Form{
		TenantID:  tenantID,
		FormID:    formID,
		FormTitle: title,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m *mockStore) GetSchema(_ context.Context, tenantID, recordType string) (*model.Schema, error) {
	s, ok := m.schemas[schemaKey(tenantID, recordType)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (m *mockStore) CreateSchema(_ context.Context, schema *model.Schema) (*model.Schema, error) {
	key := schemaKey(schema.TenantID, schema.RecordType)
	if existing, ok := m.schemas[key]; ok {
		return existing, nil
	}
	now := time.Now().UTC()
	schema.CreatedAt = now
	schema.UpdatedAt = now
	schema.Normalize()
	m.schemas[key] = schema
	return schema, nil
}

func (m *mockStore) PutSchemaField(_ context.Context, tenantID, recordType, name string, def *model.FieldDefinition, required bool) (*model.Schema, error) {
	s, ok := m.schemas[schemaKey(tenantID, recordType)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	s.Properties[name] = def
	if required && !slices.Contains(s.Required, name) {
		s.Required = append(s.Required, name)
	}
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

func (m *mockStore) RemoveSchemaField(_ context.Context, tenantID, recordType, name string) (*model.Schema, error) {
	s, ok := m.schemas[schemaKey(tenantID, recordType)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(s.Properties, name)
	s.Required = slices.DeleteFunc(s.Required, func(n string) bool { return n == name })
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

func (m *mockStore) GetForm(_ context.Context, tenantID, formID string) (*model.Form, error) {
	f, ok := m.forms[schemaKey(tenantID, formID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return f, nil
}

func (m *mockStore) ListForms(_ context.Context, tenantID string) ([]*model.Form, error) {
	var forms []*model.Form
	for _, f := range m.forms {
		if f.TenantID == tenantID {
			forms = append(forms, f)
		}
	}
	// Default-type rows first, then by title.
	sort.Slice(forms, func(i, j int) bool {
		if forms[i].Type != forms[j].Type {
			return forms[i].Type == model.FormTypeDefault
		}
		return forms[i].FormTitle < forms[j].FormTitle
	})
	return forms, nil
}

func (m *mockStore) CreateForm(_ context.Context, form *model.Form) error {
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now
	m.forms[schemaKey(form.TenantID, form.FormID)] = form
	return nil
}

func (m *mockStore) UpsertDefaultForm(_ context.Context, tenantID, formID, title string) error {
	key := schemaKey(tenantID, formID)
	if existing, ok := m.forms[key]; ok {
		existing.FormTitle = title
		existing.UpdatedAt = time.Now().UTC()
		return nil
	}
	m.registerForm(tenantID, formID, title, model.FormTypeDefault)
	return nil
}

func (m *mockStore) CreateRecord(_ context.Context, record *model.Record) error {
	m.records[recordKey(record.TenantID, record.RecordType, record.ID)] = record
	return nil
}

func (m *mockStore) GetRecord(_ context.Context, tenantID, recordType, id string) (*model.Record, error) {
	r, ok := m.records[recordKey(tenantID, recordType, id)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockStore) ListRecords(_ context.Context, tenantID, recordType string, filter model.RecordFilter) ([]*model.Record, int, error) {
	var records []*model.Record
	for _, r := range m.records {
		if r.TenantID == tenantID && r.RecordType == recordType {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	total := len(records)
	if filter.Offset > 0 && filter.Offset < len(records) {
		records = records[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(records) {
		records = records[:filter.Limit]
	}
	return records, total, nil
}

func (m *mockStore) UpdateRecord(_ context.Context, record *model.Record) error {
	key := recordKey(record.TenantID, record.RecordType, record.ID)
	if _, ok := m.records[key]; !ok {
		return sql.ErrNoRows
	}
	m.records[key] = record
	return nil
}

func (m *mockStore) DeleteRecord(_ context.Context, tenantID, recordType, id string) error {
	key := recordKey(tenantID, recordType, id)
	if _, ok := m.records[key]; !ok {
		return sql.ErrNoRows
	}
	delete(m.records, key)
	return nil
}

func (m *mockStore) RecordEvent(_ context.Context, event *model.Event) error {
	event.CreatedAt = time.Now().UTC()
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, tenantID, recordType string) ([]*model.Event, error) {
	var events []*model.Event
	for _, e := range m.events {
		if e.TenantID != tenantID {
			continue
		}
		if recordType != "" && e.RecordType != recordType {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (m *mockStore) ListAllForms(_ context.Context) ([]*model.Form, error) {
	var forms []*model.Form
	for _, f := range m.forms {
		forms = append(forms, f)
	}
	return forms, nil
}

func (m *mockStore) ListAllSchemas(_ context.Context) ([]*model.Schema, error) {
	var schemas []*model.Schema
	for _, s := range m.schemas {
		schemas = append(schemas, s)
	}
	return schemas, nil
}

func (m *mockStore) ListAllRecords(_ context.Context) ([]*model.Record, error) {
	var records []*model.Record
	for _, r := range m.records {
		records = append(records, r)
	}
	return records, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

// topics returns the recorded event topics in order.
func (m *mockStore) topics() []string {
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Topic
	}
	return out
}
