package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	StudyAidFlashcards    = "flashcards"
	StudyAidMockInterview = "mock_interview"
	StudyAidSkillGap      = "skill_gap"
)

type StudyAid struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Kind      string
	Subject   string
	Title     string
	Content   json.RawMessage
	CreatedAt time.Time
}
