package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/groblegark/kforms/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanSchema scans a single row into a model.Schema and normalizes it, so
// legacy rows with empty enums are corrected on every read.
func scanSchema(row scannable) (*model.Schema, error) {
	var s model.Schema
	var props []byte

	err := row.Scan(
		&s.TenantID,
		&s.RecordType,
		&props,
		pq.Array(&s.Required),
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(props) > 0 {
		if err := json.Unmarshal(props, &s.Properties); err != nil {
			return nil, fmt.Errorf("unmarshal properties: %w", err)
		}
	}
	s.Normalize()
	return &s, nil
}

// scanSchemas scans multiple rows into a slice of model.Schema pointers.
func scanSchemas(rows *sql.Rows) ([]*model.Schema, error) {
	var schemas []*model.Schema
	for rows.Next() {
		s, err := scanSchema(rows)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schemas, nil
}

// scanForm scans a single row into a model.Form.
func scanForm(row scannable) (*model.Form, error) {
	var f model.Form
	var integrationKey sql.NullString

	err := row.Scan(
		&f.TenantID,
		&f.FormID,
		&f.FormTitle,
		&f.Type,
		&integrationKey,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.IntegrationKey = integrationKey.String
	return &f, nil
}

// scanForms scans multiple rows into a slice of model.Form pointers.
func scanForms(rows *sql.Rows) ([]*model.Form, error) {
	var forms []*model.Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return forms, nil
}

// scanRecord scans a single row into a model.Record.
func scanRecord(row scannable) (*model.Record, error) {
	var r model.Record
	var (
		uri    sql.NullString
		fields []byte
	)

	err := row.Scan(
		&r.ID,
		&r.TenantID,
		&r.RecordType,
		&r.Name,
		&uri,
		&fields,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.URI = uri.String
	if len(fields) > 0 {
		r.Fields = json.RawMessage(fields)
	}
	return &r, nil
}

// scanRecords scans multiple rows into a slice of model.Record pointers.
func scanRecords(rows *sql.Rows) ([]*model.Record, error) {
	var records []*model.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// scanRecordWithTotal scans a row that has a leading total_count column
// followed by the standard record columns. Used by queryListRecords with
// COUNT(*) OVER().
func scanRecordWithTotal(row scannable) (*model.Record, int, error) {
	var total int
	var r model.Record
	var (
		uri    sql.NullString
		fields []byte
	)

	err := row.Scan(
		&total,
		&r.ID,
		&r.TenantID,
		&r.RecordType,
		&r.Name,
		&uri,
		&fields,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	r.URI = uri.String
	if len(fields) > 0 {
		r.Fields = json.RawMessage(fields)
	}
	return &r, total, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		recordType sql.NullString
		actor      sql.NullString
		payload    []byte
	)
	err := row.Scan(&e.ID, &e.Topic, &e.TenantID, &recordType, &actor, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.RecordType = recordType.String
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.Event pointers.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
