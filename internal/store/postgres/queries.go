package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/groblegark/kforms/internal/model"
)

// schemaColumns is the column list used for SELECT statements on the schemas table.
const schemaColumns = `tenant_id, record_type, properties, required, created_at, updated_at`

// formColumns is the column list used for SELECT statements on the forms table.
const formColumns = `tenant_id, form_id, form_title, type, integration_key, created_at, updated_at`

// recordColumns is the column list used for SELECT statements on the records table.
const recordColumns = `id, tenant_id, record_type, name, uri, fields, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// --- Schemas ---

func queryGetSchema(ctx context.Context, db executor, tenantID, recordType string) (*model.Schema, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+schemaColumns+` FROM schemas WHERE tenant_id = $1 AND record_type = $2`,
		tenantID, recordType)
	return scanSchema(row)
}

// queryCreateSchema inserts the schema unless a row already exists for its
// (tenant, record type) key, then reads the row back. The unique constraint
// plus DO NOTHING makes concurrent creators converge on a single winner.
func queryCreateSchema(ctx context.Context, db executor, s *model.Schema) (*model.Schema, error) {
	props, err := marshalProperties(s.Properties)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO schemas (tenant_id, record_type, properties, required, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (tenant_id, record_type) DO NOTHING`,
		s.TenantID,
		s.RecordType,
		props,
		pq.Array(s.Required),
	)
	if err != nil {
		return nil, err
	}

	return queryGetSchema(ctx, db, s.TenantID, s.RecordType)
}

// queryPutSchemaField inserts or replaces a single property and appends the
// field name to the required set when asked. One UPDATE statement, so
// concurrent mutations of other fields are never lost.
func queryPutSchemaField(ctx context.Context, db executor, tenantID, recordType, name string, def *model.FieldDefinition, required bool) (*model.Schema, error) {
	defJSON, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal field definition: %w", err)
	}

	row := db.QueryRowContext(ctx, `
		UPDATE schemas
		SET properties = jsonb_set(properties, ARRAY[$3], $4::jsonb, true),
		    required = CASE
		        WHEN $5 AND NOT ($3 = ANY(required)) THEN array_append(required, $3)
		        ELSE required
		    END,
		    updated_at = now()
		WHERE tenant_id = $1 AND record_type = $2
		RETURNING `+schemaColumns,
		tenantID, recordType, name, defJSON, required)
	return scanSchema(row)
}

// queryRemoveSchemaField drops a property by name and filters it out of the
// required set in a single UPDATE. Removing an absent field still matches
// the row, so it is a no-op rather than an error.
func queryRemoveSchemaField(ctx context.Context, db executor, tenantID, recordType, name string) (*model.Schema, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE schemas
		SET properties = properties - $3,
		    required = array_remove(required, $3),
		    updated_at = now()
		WHERE tenant_id = $1 AND record_type = $2
		RETURNING `+schemaColumns,
		tenantID, recordType, name)
	return scanSchema(row)
}

// --- Forms ---

func queryGetForm(ctx context.Context, db executor, tenantID, formID string) (*model.Form, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM forms WHERE tenant_id = $1 AND form_id = $2`,
		tenantID, formID)
	return scanForm(row)
}

// queryListForms returns a tenant's registrations, default-type rows first,
// then alphabetically by title ("default" sorts after "custom", hence DESC).
func queryListForms(ctx context.Context, db executor, tenantID string) ([]*model.Form, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+formColumns+` FROM forms WHERE tenant_id = $1 ORDER BY type DESC, form_title ASC`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForms(rows)
}

func queryCreateForm(ctx context.Context, db executor, f *model.Form) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO forms (tenant_id, form_id, form_title, type, integration_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`,
		f.TenantID,
		f.FormID,
		f.FormTitle,
		string(f.Type),
		nullString(f.IntegrationKey),
	)
	return err
}

// queryUpsertDefaultForm creates a built-in registration or refreshes its
// title. Identity columns are never touched on conflict.
func queryUpsertDefaultForm(ctx context.Context, db executor, tenantID, formID, title string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO forms (tenant_id, form_id, form_title, type, created_at, updated_at)
		VALUES ($1, $2, $3, 'default', now(), now())
		ON CONFLICT (tenant_id, form_id)
		DO UPDATE SET form_title = EXCLUDED.form_title, updated_at = now()`,
		tenantID, formID, title)
	return err
}

// --- Records ---

func queryCreateRecord(ctx context.Context, db executor, r *model.Record) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO records (id, tenant_id, record_type, name, uri, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID,
		r.TenantID,
		r.RecordType,
		r.Name,
		nullString(r.URI),
		jsonbBytes(r.Fields),
		r.CreatedAt,
		r.UpdatedAt,
	)
	return err
}

func queryGetRecord(ctx context.Context, db executor, tenantID, recordType, id string) (*model.Record, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE tenant_id = $1 AND record_type = $2 AND id = $3`,
		tenantID, recordType, id)
	return scanRecord(row)
}

func queryListRecords(ctx context.Context, db executor, tenantID, recordType string, filter model.RecordFilter) ([]*model.Record, int, error) {
	q := `SELECT COUNT(*) OVER() AS total_count, ` + recordColumns + `
		FROM records WHERE tenant_id = $1 AND record_type = $2
		ORDER BY created_at DESC`
	args := []any{tenantID, recordType}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		records []*model.Record
		total   int
	)
	for rows.Next() {
		r, n, err := scanRecordWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, r)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func queryUpdateRecord(ctx context.Context, db executor, r *model.Record) error {
	res, err := db.ExecContext(ctx, `
		UPDATE records
		SET name = $4, uri = $5, fields = $6, updated_at = $7
		WHERE tenant_id = $1 AND record_type = $2 AND id = $3`,
		r.TenantID,
		r.RecordType,
		r.ID,
		r.Name,
		nullString(r.URI),
		jsonbBytes(r.Fields),
		r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteRecord(ctx context.Context, db executor, tenantID, recordType, id string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM records WHERE tenant_id = $1 AND record_type = $2 AND id = $3`,
		tenantID, recordType, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- Events ---

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO events (topic, tenant_id, record_type, actor, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		e.Topic,
		e.TenantID,
		nullString(e.RecordType),
		nullString(e.Actor),
		jsonbBytes(e.Payload),
	)
	return err
}

func queryGetEvents(ctx context.Context, db executor, tenantID, recordType string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, tenant_id, record_type, actor, payload, created_at
		FROM events
		WHERE tenant_id = $1 AND ($2 = '' OR record_type = $2)
		ORDER BY created_at ASC`,
		tenantID, recordType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// --- Export ---

func queryListAllForms(ctx context.Context, db executor) ([]*model.Form, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+formColumns+` FROM forms ORDER BY tenant_id, form_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanForms(rows)
}

func queryListAllSchemas(ctx context.Context, db executor) ([]*model.Schema, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+schemaColumns+` FROM schemas ORDER BY tenant_id, record_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchemas(rows)
}

func queryListAllRecords(ctx context.Context, db executor) ([]*model.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records ORDER BY tenant_id, record_type, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// marshalProperties normalizes and serializes a properties map for storage.
// Empty enums are stripped before the bytes ever reach the database.
func marshalProperties(p model.Properties) ([]byte, error) {
	if p == nil {
		p = model.Properties{}
	}
	p.Normalize()
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}
	return data, nil
}
