package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/groblegark/kforms/internal/events"
	"github.com/groblegark/kforms/internal/model"
)

// listForms reconciles the built-in record types for the tenant, then
// returns every registration, default-type rows first. The reconcile is
// idempotent: existing rows only have their title and updated_at refreshed.
func (s *FormsServer) listForms(ctx context.Context, tenantID string) ([]*model.Form, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, inputError("customerId is required")
	}

	for _, seed := range s.catalog.Forms() {
		if err := s.store.UpsertDefaultForm(ctx, tenantID, seed.FormID, seed.Title); err != nil {
			return nil, fmt.Errorf("upsert default form %q: %w", seed.FormID, err)
		}
	}

	forms, err := s.store.ListForms(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return forms, nil
}

// createForm registers a custom record type. The remote field-mapping
// resource is provisioned first; if that fails, no local row is written.
func (s *FormsServer) createForm(ctx context.Context, in *model.Form) (*model.Form, error) {
	in.FormID = strings.ToLower(in.FormID)
	in.Type = model.FormTypeCustom

	if err := model.ValidateForm(in); err != nil {
		return nil, err
	}

	// Remote provisioning before the local commit: all-or-nothing.
	if err := s.integration.EnsureFieldMapping(ctx, in.IntegrationKey, in.FormID); err != nil {
		slog.Error("field-mapping provisioning failed",
			"tenant", in.TenantID, "form", in.FormID, "error", err)
		return nil, fmt.Errorf("provision field mapping: %w", err)
	}

	if err := s.store.CreateForm(ctx, in); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicFormCreated, in.TenantID, in.FormID,
		events.FormCreated{Form: in})

	return in, nil
}
