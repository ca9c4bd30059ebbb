package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/kforms/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	FormCount   int       `json:"form_count"`
	SchemaCount int       `json:"schema_count"`
	RecordCount int       `json:"record_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all forms, schemas, and records from the store as JSONL
// to w, ordered by tenant then key so output is stable across runs.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	forms, err := s.ListAllForms(ctx)
	if err != nil {
		return fmt.Errorf("list forms: %w", err)
	}

	schemas, err := s.ListAllSchemas(ctx)
	if err != nil {
		return fmt.Errorf("list schemas: %w", err)
	}

	records, err := s.ListAllRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		FormCount:   len(forms),
		SchemaCount: len(schemas),
		RecordCount: len(records),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, f := range forms {
		if err := enc.Encode(record{Type: "form", Data: f}); err != nil {
			return fmt.Errorf("encode form %s/%s: %w", f.TenantID, f.FormID, err)
		}
	}

	for _, sc := range schemas {
		if err := enc.Encode(record{Type: "schema", Data: sc}); err != nil {
			return fmt.Errorf("encode schema %s/%s: %w", sc.TenantID, sc.RecordType, err)
		}
	}

	for _, r := range records {
		if err := enc.Encode(record{Type: "record", Data: r}); err != nil {
			return fmt.Errorf("encode record %s: %w", r.ID, err)
		}
	}

	return nil
}
