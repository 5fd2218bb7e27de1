package entity

import (
	"time"

	"learnpath-be/pkg/progression"

	"github.com/google/uuid"
)

type LearningPath struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Domain    string
	Items     []progression.Item
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (p *LearningPath) OwnedBy(userId uuid.UUID) bool {
	return p.UserId == userId
}
