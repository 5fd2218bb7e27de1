package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title     string         `gorm:"type:text;not null"`
	Messages  []ChatMessage  `gorm:"foreignKey:ChatSessionId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// ChatMessage is append-only. Seq orders messages within a session, even
// when several share a timestamp.
type ChatMessage struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatSessionId  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_chat_messages_session_seq,priority:1;uniqueIndex:idx_chat_messages_idempotency,priority:1,where:idempotency_key <> ''"`
	Seq            int64          `gorm:"not null;uniqueIndex:idx_chat_messages_session_seq,priority:2"`
	Role           string         `gorm:"type:varchar(20);not null"`
	Content        string         `gorm:"type:text;not null"`
	IdempotencyKey string         `gorm:"type:varchar(128);not null;default:'';uniqueIndex:idx_chat_messages_idempotency,priority:2,where:idempotency_key <> ''"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
