package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AssessmentAttempt struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	Topic              string
	LearningPathId     *uuid.UUID
	TopicIndex         *int
	QuestionCount      int
	Score              float64
	OutOf              float64
	Passed             bool
	Evaluator          string
	AssessmentDocument json.RawMessage
	EvaluationDocument json.RawMessage
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
