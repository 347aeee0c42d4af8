package services

import "context"

// EventPublisherSvc publishes lifecycle events to the analytics backend.
// Implementations must never fail the business operation that emits them.
type EventPublisherSvc interface {
	// Publish enqueues one event attributed to the acting user.
	Publish(ctx context.Context, distinctID string, event string, properties map[string]any)

	// Close flushes buffered events before shutdown.
	Close() error
}
