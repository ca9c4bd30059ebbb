// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/kforms/internal/model"
	"github.com/groblegark/kforms/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetSchema(ctx context.Context, tenantID, recordType string) (*model.Schema, error) {
	return queryGetSchema(ctx, s.db, tenantID, recordType)
}

func (s *PostgresStore) CreateSchema(ctx context.Context, schema *model.Schema) (*model.Schema, error) {
	return queryCreateSchema(ctx, s.db, schema)
}

func (s *PostgresStore) PutSchemaField(ctx context.Context, tenantID, recordType, name string, def *model.FieldDefinition, required bool) (*model.Schema, error) {
	return queryPutSchemaField(ctx, s.db, tenantID, recordType, name, def, required)
}

func (s *PostgresStore) RemoveSchemaField(ctx context.Context, tenantID, recordType, name string) (*model.Schema, error) {
	return queryRemoveSchemaField(ctx, s.db, tenantID, recordType, name)
}

func (s *PostgresStore) GetForm(ctx context.Context, tenantID, formID string) (*model.Form, error) {
	return queryGetForm(ctx, s.db, tenantID, formID)
}

func (s *PostgresStore) ListForms(ctx context.Context, tenantID string) ([]*model.Form, error) {
	return queryListForms(ctx, s.db, tenantID)
}

func (s *PostgresStore) CreateForm(ctx context.Context, form *model.Form) error {
	return queryCreateForm(ctx, s.db, form)
}

func (s *PostgresStore) UpsertDefaultForm(ctx context.Context, tenantID, formID, title string) error {
	return queryUpsertDefaultForm(ctx, s.db, tenantID, formID, title)
}

func (s *PostgresStore) CreateRecord(ctx context.Context, record *model.Record) error {
	return queryCreateRecord(ctx, s.db, record)
}

func (s *PostgresStore) GetRecord(ctx context.Context, tenantID, recordType, id string) (*model.Record, error) {
	return queryGetRecord(ctx, s.db, tenantID, recordType, id)
}

func (s *PostgresStore) ListRecords(ctx context.Context, tenantID, recordType string, filter model.RecordFilter) ([]*model.Record, int, error) {
	return queryListRecords(ctx, s.db, tenantID, recordType, filter)
}

func (s *PostgresStore) UpdateRecord(ctx context.Context, record *model.Record) error {
	return queryUpdateRecord(ctx, s.db, record)
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, tenantID, recordType, id string) error {
	return queryDeleteRecord(ctx, s.db, tenantID, recordType, id)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) GetEvents(ctx context.Context, tenantID, recordType string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.db, tenantID, recordType)
}

func (s *PostgresStore) ListAllForms(ctx context.Context) ([]*model.Form, error) {
	return queryListAllForms(ctx, s.db)
}

func (s *PostgresStore) ListAllSchemas(ctx context.Context) ([]*model.Schema, error) {
	return queryListAllSchemas(ctx, s.db)
}

func (s *PostgresStore) ListAllRecords(ctx context.Context) ([]*model.Record, error) {
	return queryListAllRecords(ctx, s.db)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) GetSchema(ctx context.Context, tenantID, recordType string) (*model.Schema, error) {
	return queryGetSchema(ctx, s.tx, tenantID, recordType)
}

func (s *txStore) CreateSchema(ctx context.Context, schema *model.Schema) (*model.Schema, error) {
	return queryCreateSchema(ctx, s.tx, schema)
}

func (s *txStore) PutSchemaField(ctx context.Context, tenantID, recordType, name string, def *model.FieldDefinition, required bool) (*model.Schema, error) {
	return queryPutSchemaField(ctx, s.tx, tenantID, recordType, name, def, required)
}

func (s *txStore) RemoveSchemaField(ctx context.Context, tenantID, recordType, name string) (*model.Schema, error) {
	return queryRemoveSchemaField(ctx, s.tx, tenantID, recordType, name)
}

func (s *txStore) GetForm(ctx context.Context, tenantID, formID string) (*model.Form, error) {
	return queryGetForm(ctx, s.tx, tenantID, formID)
}

func (s *txStore) ListForms(ctx context.Context, tenantID string) ([]*model.Form, error) {
	return queryListForms(ctx, s.tx, tenantID)
}

func (s *txStore) CreateForm(ctx context.Context, form *model.Form) error {
	return queryCreateForm(ctx, s.tx, form)
}

func (s *txStore) UpsertDefaultForm(ctx context.Context, tenantID, formID, title string) error {
	return queryUpsertDefaultForm(ctx, s.tx, tenantID, formID, title)
}

func (s *txStore) CreateRecord(ctx context.Context, record *model.Record) error {
	return queryCreateRecord(ctx, s.tx, record)
}

func (s *txStore) GetRecord(ctx context.Context, tenantID, recordType, id string) (*model.Record, error) {
	return queryGetRecord(ctx, s.tx, tenantID, recordType, id)
}

func (s *txStore) ListRecords(ctx context.Context, tenantID, recordType string, filter model.RecordFilter) ([]*model.Record, int, error) {
	return queryListRecords(ctx, s.tx, tenantID, recordType, filter)
}

func (s *txStore) UpdateRecord(ctx context.Context, record *model.Record) error {
	return queryUpdateRecord(ctx, s.tx, record)
}

func (s *txStore) DeleteRecord(ctx context.Context, tenantID, recordType, id string) error {
	return queryDeleteRecord(ctx, s.tx, tenantID, recordType, id)
}

func (s *txStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txStore) GetEvents(ctx context.Context, tenantID, recordType string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.tx, tenantID, recordType)
}

func (s *txStore) ListAllForms(ctx context.Context) ([]*model.Form, error) {
	return queryListAllForms(ctx, s.tx)
}

func (s *txStore) ListAllSchemas(ctx context.Context) ([]*model.Schema, error) {
	return queryListAllSchemas(ctx, s.tx)
}

func (s *txStore) ListAllRecords(ctx context.Context) ([]*model.Record, error) {
	return queryListAllRecords(ctx, s.tx)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
