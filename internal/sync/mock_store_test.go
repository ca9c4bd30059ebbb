package sync

import (
	"context"
	"database/sql"
	"sort"

	"github.com/groblegark/kforms/internal/model"
	"github.com/groblegark/kforms/internal/store"
)

// mockStore is a minimal in-memory store for sync tests.
type mockStore struct {
	forms   []*model.Form
	schemas []*model.Schema
	records []*model.Record

	failListForms error
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) ListAllForms(context.Context) ([]*model.Form, error) {
	if m.failListForms != nil {
		return nil, m.failListForms
	}
	sort.Slice(m.forms, func(i, j int) bool {
		return m.forms[i].TenantID+m.forms[i].FormID < m.forms[j].TenantID+m.forms[j].FormID
	})
	return m.forms, nil
}

func (m *mockStore) ListAllSchemas(context.Context) ([]*model.Schema, error) {
	return m.schemas, nil
}

func (m *mockStore) ListAllRecords(context.Context) ([]*model.Record, error) {
	return m.records, nil
}

// The remaining Store methods are unused by the export path.

func (m *mockStore) GetSchema(context.Context, string, string) (*model.Schema, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) CreateSchema(_ context.Context, s *model.Schema) (*model.Schema, error) {
	return s, nil
}

func (m *mockStore) PutSchemaField(context.Context, string, string, string, *model.FieldDefinition, bool) (*model.Schema, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) RemoveSchemaField(context.Context, string, string, string) (*model.Schema, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) GetForm(context.Context, string, string) (*model.Form, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) ListForms(context.Context, string) ([]*model.Form, error) { return nil, nil }

func (m *mockStore) CreateForm(context.Context, *model.Form) error { return nil }

func (m *mockStore) UpsertDefaultForm(context.Context, string, string, string) error { return nil }

func (m *mockStore) CreateRecord(context.Context, *model.Record) error { return nil }

func (m *mockStore) GetRecord(context.Context, string, string, string) (*model.Record, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) ListRecords(context.Context, string, string, model.RecordFilter) ([]*model.Record, int, error) {
	return nil, 0, nil
}

func (m *mockStore) UpdateRecord(context.Context, *model.Record) error { return nil }

func (m *mockStore) DeleteRecord(context.Context, string, string, string) error { return nil }

func (m *mockStore) RecordEvent(context.Context, *model.Event) error { return nil }

func (m *mockStore) GetEvents(context.Context, string, string) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
