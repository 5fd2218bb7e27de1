package mapper

import (
	"time"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/model"

	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: toDeletedAt(s.DeletedAt, s.IsDeleted),
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var deletedAt *time.Time
	if msg.DeletedAt.Valid {
		t := msg.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.ChatMessage{
		Id:             msg.Id,
		ChatSessionId:  msg.ChatSessionId,
		Seq:            msg.Seq,
		Role:           msg.Role,
		Content:        msg.Content,
		IdempotencyKey: msg.IdempotencyKey,
		CreatedAt:      msg.CreatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      msg.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:             msg.Id,
		ChatSessionId:  msg.ChatSessionId,
		Seq:            msg.Seq,
		Role:           msg.Role,
		Content:        msg.Content,
		IdempotencyKey: msg.IdempotencyKey,
		CreatedAt:      msg.CreatedAt,
		DeletedAt:      toDeletedAt(msg.DeletedAt, msg.IsDeleted),
	}
}

func (m *ChatMapper) ChatMessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	out := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		out[i] = m.ChatMessageToEntity(msg)
	}
	return out
}

func toDeletedAt(at *time.Time, isDeleted bool) gorm.DeletedAt {
	if at != nil {
		return gorm.DeletedAt{Time: *at, Valid: true}
	}
	if isDeleted {
		return gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return gorm.DeletedAt{}
}
