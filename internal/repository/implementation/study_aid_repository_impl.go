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

type StudyAidRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudyAidMapper
}

func NewStudyAidRepository(db *gorm.DB) contract.StudyAidRepository {
	return &StudyAidRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudyAidMapper(),
	}
}

func (r *StudyAidRepositoryImpl) Create(ctx context.Context, aid *entity.StudyAid) error {
	m := r.mapper.ToModel(aid)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*aid = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyAidRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyAid, error) {
	var m model.StudyAid
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StudyAidRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyAid, error) {
	var models []*model.StudyAid
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.StudyAid, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
