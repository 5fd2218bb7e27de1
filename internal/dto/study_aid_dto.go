package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type FlashcardsRequest struct {
	Topic string `json:"topic" validate:"required,max=255"`
	Count int    `json:"count" validate:"omitempty,min=1,max=50"`
}

type MockInterviewRequest struct {
	Role   string `json:"role" validate:"required,max=255"`
	Rounds int    `json:"rounds" validate:"omitempty,min=1,max=20"`
}

type SkillGapRequest struct {
	Resume     string `json:"resume" validate:"required,max=20000"`
	TargetRole string `json:"target_role" validate:"required,max=255"`
}

type CodingExerciseRequest struct {
	Topic string `json:"topic" validate:"required,max=255"`
}

type StudyAidResponse struct {
	Id     uuid.UUID       `json:"id"`
	Kind   string          `json:"kind"`
	Result json.RawMessage `json:"result"`
}

type CodingExerciseResponse struct {
	Topic  string          `json:"topic"`
	Result json.RawMessage `json:"result"`
}

type GetAllStudyAidsResponse struct {
	Id        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
