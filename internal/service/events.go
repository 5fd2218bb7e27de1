package service

import (
	"context"

	"learnpath-be/internal/pkg/logger"
	"learnpath-be/pkg/events"
)

// EventPublisher is satisfied by *nats.Publisher. A nil publisher disables
// domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// publishEvent runs after the transaction has committed; a failure is only
// logged.
func publishEvent(ctx context.Context, publisher EventPublisher, log logger.ILogger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("EVENTS", "failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
