package events

import "context"

// NoopPublisher discards every event. It stands in for NATS when
// FORMS_NATS_URL is unset, so callers never have to nil-check the
// publisher.
type NoopPublisher struct{}

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (*NoopPublisher) Close() error { return nil }
