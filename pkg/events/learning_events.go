package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePathCreated        = "PATH_CREATED"
	TypeTopicCompleted     = "TOPIC_COMPLETED"
	TypeTopicFailed        = "TOPIC_FAILED"
	TypePathRegenerated    = "PATH_REGENERATED"
	TypeChatSessionDeleted = "CHAT_SESSION_DELETED"
)

func NewPathCreated(userId, pathId uuid.UUID, domain string, topics int) Event {
	return BaseEvent{
		Type: TypePathCreated,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"path_id": pathId.String(),
			"domain":  domain,
			"topics":  topics,
		},
		OccurredAt: time.Now(),
	}
}

// NewTopicEvaluated reports the outcome of an assessment on a path topic.
func NewTopicEvaluated(userId, pathId uuid.UUID, topicIndex int, topic string, passed bool, score, outOf float64) Event {
	eventType := TypeTopicFailed
	if passed {
		eventType = TypeTopicCompleted
	}
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"path_id":     pathId.String(),
			"topic_index": topicIndex,
			"topic":       topic,
			"score":       score,
			"out_of":      outOf,
		},
		OccurredAt: time.Now(),
	}
}

func NewPathRegenerated(userId, pathId uuid.UUID, fromIndex int, reason string) Event {
	return BaseEvent{
		Type: TypePathRegenerated,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"path_id":    pathId.String(),
			"from_index": fromIndex,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatSessionDeleted(userId, sessionId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeChatSessionDeleted,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": sessionId.String(),
		},
		OccurredAt: time.Now(),
	}
}
