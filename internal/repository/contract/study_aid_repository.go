package contract

import (
	"context"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/repository/specification"
)

type StudyAidRepository interface {
	Create(ctx context.Context, aid *entity.StudyAid) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyAid, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyAid, error)
}
