package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/groblegark/kforms/internal/events"
	"github.com/groblegark/kforms/internal/idgen"
	"github.com/groblegark/kforms/internal/model"
	"github.com/groblegark/kforms/internal/relay"
)

// createRecord persists a new record for a registered record type and
// forwards it to the webhook relay. The relay is best-effort: the record
// is committed either way.
func (s *FormsServer) createRecord(ctx context.Context, rec *model.Record) (*model.Record, error) {
	rec.RecordType = strings.ToLower(rec.RecordType)

	if err := model.ValidateRecord(rec); err != nil {
		return nil, err
	}

	if err := s.requireForm(ctx, rec.TenantID, rec.RecordType); err != nil {
		return nil, err
	}

	if rec.ID == "" {
		id, err := idgen.NewRecordID()
		if err != nil {
			return nil, fmt.Errorf("generate record id: %w", err)
		}
		rec.ID = id
	}

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicRecordCreated, rec.TenantID, rec.RecordType,
		events.RecordCreated{Record: rec})
	s.relaySend(ctx, rec.RecordType, relay.ChangeCreated, rec, rec.TenantID)

	return rec, nil
}

// getRecord fetches one record by ID.
func (s *FormsServer) getRecord(ctx context.Context, tenantID, recordType, id string) (*model.Record, error) {
	recordType = strings.ToLower(recordType)

	rec, err := s.store.GetRecord(ctx, tenantID, recordType, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// listRecords returns a page of records for a registered record type.
func (s *FormsServer) listRecords(ctx context.Context, tenantID, recordType string, filter model.RecordFilter) ([]*model.Record, int, error) {
	recordType = strings.ToLower(recordType)

	if err := s.requireForm(ctx, tenantID, recordType); err != nil {
		return nil, 0, err
	}

	records, total, err := s.store.ListRecords(ctx, tenantID, recordType, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	return records, total, nil
}

// updateRecord replaces a record's mutable attributes and relays the change.
func (s *FormsServer) updateRecord(ctx context.Context, rec *model.Record) (*model.Record, error) {
	rec.RecordType = strings.ToLower(rec.RecordType)

	if err := model.ValidateRecord(rec); err != nil {
		return nil, err
	}

	rec.UpdatedAt = time.Now().UTC()

	err := s.store.UpdateRecord(ctx, rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicRecordUpdated, rec.TenantID, rec.RecordType,
		events.RecordUpdated{Record: rec})
	s.relaySend(ctx, rec.RecordType, relay.ChangeUpdated, rec, rec.TenantID)

	return rec, nil
}

// deleteRecord removes a record and relays the deletion.
func (s *FormsServer) deleteRecord(ctx context.Context, tenantID, recordType, id string) error {
	recordType = strings.ToLower(recordType)

	err := s.store.DeleteRecord(ctx, tenantID, recordType, id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundError("record not found")
	}
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicRecordDeleted, tenantID, recordType,
		events.RecordDeleted{TenantID: tenantID, RecordType: recordType, RecordID: id})
	s.relaySend(ctx, recordType, relay.ChangeDeleted, map[string]string{"id": id, "recordType": recordType}, tenantID)

	return nil
}

// relaySend forwards a record change to the webhook relay. Failures are
// logged and do not roll back the record write.
func (s *FormsServer) relaySend(ctx context.Context, recordType string, change relay.Change, data any, tenantID string) {
	if s.relay == nil {
		return
	}
	payload := relay.Payload{
		Type:       change,
		Data:       data,
		CustomerID: tenantID,
	}
	if err := s.relay.Send(ctx, recordType, s.catalog.IsDefaultType(recordType), payload); err != nil {
		slog.Warn("webhook relay failed",
			"tenant", tenantID, "record_type", recordType, "change", change, "error", err)
	}
}
