package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

type ByIdempotencyKey struct {
	Key string
}

func (s ByIdempotencyKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("idempotency_key = ?", s.Key)
}

// LatestFirst orders messages newest first by sequence.
type LatestFirst struct{}

func (s LatestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("seq DESC")
}

// Chronological orders messages in the order they were appended.
type Chronological struct{}

func (s Chronological) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}
