package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/groblegark/kforms/internal/model"
)

func TestExportJSONL(t *testing.T) {
	st := &mockStore{
		forms: []*model.Form{
			{TenantID: "T1", FormID: "activities", FormTitle: "Activities", Type: model.FormTypeDefault},
			{TenantID: "T1", FormID: "invoices", FormTitle: "Invoices", Type: model.FormTypeCustom},
		},
		schemas: []*model.Schema{
			{TenantID: "T1", RecordType: "activities",
				Properties: model.Properties{"id": {Type: "string", Title: "ID"}},
				Required:   []string{"id"}},
		},
		records: []*model.Record{
			{ID: "rec-1", TenantID: "T1", RecordType: "activities", Name: "Call Acme"},
		},
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), st, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 2 forms + 1 schema + 1 record", len(lines))
	}

	var h struct {
		Version     string `json:"version"`
		Type        string `json:"type"`
		FormCount   int    `json:"form_count"`
		SchemaCount int    `json:"schema_count"`
		RecordCount int    `json:"record_count"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Type != "header" || h.Version != "1" {
		t.Errorf("header = %+v", h)
	}
	if h.FormCount != 2 || h.SchemaCount != 1 || h.RecordCount != 1 {
		t.Errorf("header counts = %+v", h)
	}

	// Records follow forms, forms follow the header.
	wantTypes := []string{"form", "form", "schema", "record"}
	for i, line := range lines[1:] {
		var rec struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("unmarshal line %d: %v", i+1, err)
		}
		if rec.Type != wantTypes[i] {
			t.Errorf("line %d type = %q, want %q", i+1, rec.Type, wantTypes[i])
		}
	}
}

func TestExportJSONL_StoreError(t *testing.T) {
	st := &mockStore{failListForms: errors.New("connection lost")}

	var buf bytes.Buffer
	err := ExportJSONL(context.Background(), st, &buf)
	if err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Error("no output should be written when the export fails")
	}
}
