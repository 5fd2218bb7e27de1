package contract

import (
	"context"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatMessageRepository is append-only apart from the session cascade.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MaxSeq returns the highest seq in the session, 0 when it has no messages.
	MaxSeq(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
