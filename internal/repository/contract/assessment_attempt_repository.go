package contract

import (
	"context"

	"learnpath-be/internal/entity"
	"learnpath-be/internal/repository/specification"
)

type AssessmentAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.AssessmentAttempt) error
	Update(ctx context.Context, attempt *entity.AssessmentAttempt) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AssessmentAttempt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AssessmentAttempt, error)
}
