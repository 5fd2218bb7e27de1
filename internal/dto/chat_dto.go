package dto

import (
	"time"

	"github.com/google/uuid"
)

type IncomingChatMessage struct {
	Role           string `json:"role"`
	Content        string `json:"content"`
	IdempotencyKey string `json:"idempotency_key" validate:"max=128"`
}

// SendChatRequest takes either a batch in Messages or a single Message.
type SendChatRequest struct {
	SessionId *uuid.UUID            `json:"session_id"`
	Messages  []IncomingChatMessage `json:"messages" validate:"max=50,dive"`
	Message   *IncomingChatMessage  `json:"message"`
}

func (r *SendChatRequest) All() []IncomingChatMessage {
	if len(r.Messages) == 0 && r.Message != nil {
		return []IncomingChatMessage{*r.Message}
	}
	return r.Messages
}

type SendChatResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Title     string    `json:"title"`
	Reply     string    `json:"reply"`
	ReplyHtml string    `json:"reply_html"`
	Appended  int       `json:"appended"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Preview   string     `json:"preview"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowSessionResponse struct {
	Id        uuid.UUID             `json:"id"`
	Title     string                `json:"title"`
	CreatedAt time.Time             `json:"created_at"`
	Messages  []ChatMessageResponse `json:"messages"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"max=255"`
}
