package services

import (
	"context"

	portssvc "github.com/citycable/cable_collect_app/internal/core/ports/services"
	"github.com/citycable/cable_collect_app/internal/utils"
)

// posthogEventPublisher publishes lifecycle events through the PostHog
// client wrapper. When no API key is configured every call is a no-op, so
// business flows behave identically with analytics off.
type posthogEventPublisher struct {
	client *utils.PosthogClientWrapper
}

// NewPosthogEventPublisher creates a new instance of posthogEventPublisher.
func NewPosthogEventPublisher(client *utils.PosthogClientWrapper) portssvc.EventPublisherSvc {
	return &posthogEventPublisher{client: client}
}

// Publish enqueues one event attributed to the acting user.
func (p *posthogEventPublisher) Publish(ctx context.Context, distinctID string, event string, properties map[string]any) {
	if p.client == nil || !p.client.IsInitialized() {
		return
	}
	p.client.Enqueue(distinctID, event, properties)
}

// Close flushes buffered events before shutdown.
func (p *posthogEventPublisher) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
