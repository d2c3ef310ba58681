package ports

import "context"

// EventPublisher delivers outbox payloads to the event bus. Implementations
// must be safe to retry: consumers deduplicate on event id.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error
}
