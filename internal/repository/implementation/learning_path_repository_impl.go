package implementation

import (
	"context"
	"errors"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/mapper"
	"learnpath-be/internal/model"
	"learnpath-be/internal/repository/contract"
	"learnpath-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningPathRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearningPathMapper
}

func NewLearningPathRepository(db *gorm.DB) contract.LearningPathRepository {
	return &LearningPathRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearningPathMapper(),
	}
}

func (r *LearningPathRepositoryImpl) Create(ctx context.Context, path *entity.LearningPath) error {
	m := r.mapper.ToModel(path)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*path = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningPathRepositoryImpl) Update(ctx context.Context, path *entity.LearningPath) error {
	m := r.mapper.ToModel(path)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*path = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningPathRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LearningPath{}, "id = ?", id).Error
}

func (r *LearningPathRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPath, error) {
	var m model.LearningPath
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LearningPathRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPath, error) {
	var models []*model.LearningPath
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LearningPath, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
