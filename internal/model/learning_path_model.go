package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LearningPath keeps the whole schedule in one JSON column, so a plan row is
// read and written as a unit.
type LearningPath struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Domain    string         `gorm:"type:varchar(255);not null"`
	Items     []PathItem     `gorm:"type:text;serializer:json"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

type PathItem struct {
	Topic            string          `json:"topic"`
	DurationDays     int             `json:"duration_days"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Status           string          `json:"status"`
	AssessmentResult json.RawMessage `json:"assessment_result,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}
