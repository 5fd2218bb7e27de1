package mapper

import (
	"encoding/json"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/model"

	"gorm.io/datatypes"
)

type StudyAidMapper struct{}

func NewStudyAidMapper() *StudyAidMapper {
	return &StudyAidMapper{}
}

func (m *StudyAidMapper) ToEntity(s *model.StudyAid) *entity.StudyAid {
	if s == nil {
		return nil
	}
	return &entity.StudyAid{
		Id:        s.Id,
		UserId:    s.UserId,
		Kind:      s.Kind,
		Subject:   s.Subject,
		Title:     s.Title,
		Content:   json.RawMessage(s.Content),
		CreatedAt: s.CreatedAt,
	}
}

func (m *StudyAidMapper) ToModel(s *entity.StudyAid) *model.StudyAid {
	if s == nil {
		return nil
	}
	return &model.StudyAid{
		Id:        s.Id,
		UserId:    s.UserId,
		Kind:      s.Kind,
		Subject:   s.Subject,
		Title:     s.Title,
		Content:   datatypes.JSON(s.Content),
		CreatedAt: s.CreatedAt,
	}
}
