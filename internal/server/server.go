package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/groblegark/kforms/internal/catalog"
	"github.com/groblegark/kforms/internal/events"
	"github.com/groblegark/kforms/internal/integration"
	"github.com/groblegark/kforms/internal/model"
	"github.com/groblegark/kforms/internal/relay"
	"github.com/groblegark/kforms/internal/store"
)

// FormsServer answers the schema, form, and record operations over the
// store. Handlers are request-scoped and stateless; the store is the only
// system of record.
type FormsServer struct {
	store       store.Store
	publisher   events.Publisher
	catalog     *catalog.Catalog
	integration integration.Client
	relay       *relay.Relay
}

// NewFormsServer returns a FormsServer backed by the given collaborators.
func NewFormsServer(s store.Store, p events.Publisher, c *catalog.Catalog, ic integration.Client, r *relay.Relay) *FormsServer {
	return &FormsServer{
		store:       s,
		publisher:   p,
		catalog:     c,
		integration: ic,
		relay:       r,
	}
}

// recordAndPublish persists an audit event to the store and publishes it to
// the event bus. Both operations are best-effort; failures are logged but do
// not block the caller.
func (s *FormsServer) recordAndPublish(ctx context.Context, topic, tenantID, recordType string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "tenant", tenantID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:      topic,
		TenantID:   tenantID,
		RecordType: recordType,
		Payload:    payload,
	}); err != nil {
		slog.Warn("failed to record event", "topic", topic, "tenant", tenantID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "tenant", tenantID, "error", err)
	}
}

// inputError indicates invalid user input. The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

// notFoundError indicates a missing form, schema, or record.
// The HTTP layer maps this to 404.
type notFoundError string

func (e notFoundError) Error() string { return string(e) }
