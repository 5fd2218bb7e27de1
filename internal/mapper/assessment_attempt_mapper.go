package mapper

import (
	"encoding/json"
	"time"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/model"

	"gorm.io/datatypes"
)

type AssessmentAttemptMapper struct{}

func NewAssessmentAttemptMapper() *AssessmentAttemptMapper {
	return &AssessmentAttemptMapper{}
}

func (m *AssessmentAttemptMapper) ToEntity(a *model.AssessmentAttempt) *entity.AssessmentAttempt {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.AssessmentAttempt{
		Id:                 a.Id,
		UserId:             a.UserId,
		Topic:              a.Topic,
		LearningPathId:     a.LearningPathId,
		TopicIndex:         a.TopicIndex,
		QuestionCount:      a.QuestionCount,
		Score:              a.Score,
		OutOf:              a.OutOf,
		Passed:             a.Passed,
		Evaluator:          a.Evaluator,
		AssessmentDocument: json.RawMessage(a.AssessmentDocument),
		EvaluationDocument: json.RawMessage(a.EvaluationDocument),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *AssessmentAttemptMapper) ToModel(a *entity.AssessmentAttempt) *model.AssessmentAttempt {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.AssessmentAttempt{
		Id:                 a.Id,
		UserId:             a.UserId,
		Topic:              a.Topic,
		LearningPathId:     a.LearningPathId,
		TopicIndex:         a.TopicIndex,
		QuestionCount:      a.QuestionCount,
		Score:              a.Score,
		OutOf:              a.OutOf,
		Passed:             a.Passed,
		Evaluator:          a.Evaluator,
		AssessmentDocument: datatypes.JSON(a.AssessmentDocument),
		EvaluationDocument: datatypes.JSON(a.EvaluationDocument),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}
