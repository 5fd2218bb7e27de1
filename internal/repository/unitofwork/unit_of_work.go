package unitofwork

import (
	"context"

	"learnpath-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LearningPathRepository() contract.LearningPathRepository
	AssessmentAttemptRepository() contract.AssessmentAttemptRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	StudyAidRepository() contract.StudyAidRepository
}
