package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type GenerateAssessmentRequest struct {
	Topic string `json:"topic" validate:"required,max=255"`
}

type GenerateAssessmentResponse struct {
	AttemptId  uuid.UUID       `json:"attempt_id"`
	Topic      string          `json:"topic"`
	TopicIndex *int            `json:"topic_index,omitempty"`
	Questions  json.RawMessage `json:"questions"`
}

type AnswerRequest struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correctAnswer"`
	UserAnswer    string `json:"userAnswer"`
}

type EvaluateAssessmentRequest struct {
	AttemptId *uuid.UUID      `json:"attempt_id"`
	Topic     string          `json:"topic" validate:"max=255"`
	Answers   []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

type EvaluateAssessmentResponse struct {
	AttemptId  uuid.UUID       `json:"attempt_id"`
	Topic      string          `json:"topic"`
	Score      float64         `json:"score"`
	OutOf      float64         `json:"out_of"`
	Passed     bool            `json:"passed"`
	Evaluation json.RawMessage `json:"evaluation"`
	Path       *PathResponse   `json:"path,omitempty"`
}

type AssessmentAttemptResponse struct {
	Id             uuid.UUID  `json:"id"`
	Topic          string     `json:"topic"`
	LearningPathId *uuid.UUID `json:"learning_path_id,omitempty"`
	TopicIndex     *int       `json:"topic_index,omitempty"`
	QuestionCount  int        `json:"question_count"`
	Score          float64    `json:"score"`
	OutOf          float64    `json:"out_of"`
	Passed         bool       `json:"passed"`
	CreatedAt      time.Time  `json:"created_at"`
}
