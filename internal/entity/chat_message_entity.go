package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id             uuid.UUID
	ChatSessionId  uuid.UUID
	Seq            int64
	Role           string
	Content        string
	IdempotencyKey string
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
