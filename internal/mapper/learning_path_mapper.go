package mapper

import (
	"time"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/model"
	"learnpath-be/pkg/progression"
)

type LearningPathMapper struct{}

func NewLearningPathMapper() *LearningPathMapper {
	return &LearningPathMapper{}
}

func (m *LearningPathMapper) ToEntity(p *model.LearningPath) *entity.LearningPath {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	items := make([]progression.Item, len(p.Items))
	for i, it := range p.Items {
		items[i] = progression.Item{
			Topic:            it.Topic,
			DurationDays:     it.DurationDays,
			StartDate:        it.StartDate,
			EndDate:          it.EndDate,
			Status:           progression.Status(it.Status),
			AssessmentResult: it.AssessmentResult,
			Notes:            it.Notes,
		}
	}

	return &entity.LearningPath{
		Id:        p.Id,
		UserId:    p.UserId,
		Domain:    p.Domain,
		Items:     items,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *LearningPathMapper) ToModel(p *entity.LearningPath) *model.LearningPath {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	items := make([]model.PathItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = model.PathItem{
			Topic:            it.Topic,
			DurationDays:     it.DurationDays,
			StartDate:        it.StartDate,
			EndDate:          it.EndDate,
			Status:           string(it.Status),
			AssessmentResult: it.AssessmentResult,
			Notes:            it.Notes,
		}
	}

	return &model.LearningPath{
		Id:        p.Id,
		UserId:    p.UserId,
		Domain:    p.Domain,
		Items:     items,
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
