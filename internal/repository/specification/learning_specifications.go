package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByLearningPathID struct {
	LearningPathID uuid.UUID
}

func (s ByLearningPathID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("learning_path_id = ?", s.LearningPathID)
}

type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}
