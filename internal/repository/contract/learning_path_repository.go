package contract

import (
	"context"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LearningPathRepository interface {
	Create(ctx context.Context, path *entity.LearningPath) error
	Update(ctx context.Context, path *entity.LearningPath) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LearningPath, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningPath, error)
}
