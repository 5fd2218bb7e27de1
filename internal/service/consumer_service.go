package service

import (
	"context"

	"learnpath-be/internal/pkg/logger"
	"learnpath-be/pkg/events"
	pktNats "learnpath-be/pkg/nats"
)

const activityDurable = "learnpath-activity-log"

// EventSource is satisfied by *nats.Subscriber.
type EventSource interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
	Handle(ctx context.Context, event events.Event) error
}

// consumerService writes every learning event to the activity log.
type consumerService struct {
	source EventSource
	logger logger.ILogger
}

func NewConsumerService(source EventSource, log logger.ILogger) IConsumerService {
	return &consumerService{source: source, logger: log}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	return cs.source.Subscribe(ctx, pktNats.SubjectPrefix+".>", activityDurable, cs.Handle)
}

func (cs *consumerService) Handle(_ context.Context, event events.Event) error {
	details := map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}

	switch event.EventType() {
	case events.TypePathCreated, events.TypePathRegenerated,
		events.TypeTopicCompleted, events.TypeTopicFailed,
		events.TypeChatSessionDeleted:
		cs.logger.Info("ACTIVITY", "learning event", details)
	default:
		cs.logger.Warn("ACTIVITY", "unknown event type", details)
	}
	return nil
}
