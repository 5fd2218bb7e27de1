package implementation

import (
	"context"
	"errors"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/mapper"
	"learnpath-be/internal/model"
	"learnpath-be/internal/repository/contract"
	"learnpath-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AssessmentAttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssessmentAttemptMapper
}

func NewAssessmentAttemptRepository(db *gorm.DB) contract.AssessmentAttemptRepository {
	return &AssessmentAttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssessmentAttemptMapper(),
	}
}

func (r *AssessmentAttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.AssessmentAttempt) error {
	m := r.mapper.ToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssessmentAttemptRepositoryImpl) Update(ctx context.Context, attempt *entity.AssessmentAttempt) error {
	m := r.mapper.ToModel(attempt)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssessmentAttemptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AssessmentAttempt, error) {
	var m model.AssessmentAttempt
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AssessmentAttemptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AssessmentAttempt, error) {
	var models []*model.AssessmentAttempt
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AssessmentAttempt, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
