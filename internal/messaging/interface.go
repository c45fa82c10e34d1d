package messaging

import "context"

// PublisherInterface defines the contract for event publishing. Services
// treat publishing as best effort and accept a nil publisher, so event
// delivery never blocks a clinic operation.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

// Ensure Publisher implements PublisherInterface
var _ PublisherInterface = (*Publisher)(nil)
