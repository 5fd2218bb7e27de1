package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentAttempt struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Topic              string     `gorm:"type:varchar(255);not null"`
	LearningPathId     *uuid.UUID `gorm:"type:uuid;index"`
	TopicIndex         *int
	QuestionCount      int     `gorm:"not null;default:0"`
	Score              float64 `gorm:"not null;default:0"`
	OutOf              float64 `gorm:"not null;default:0"`
	Passed             bool    `gorm:"not null;default:false"`
	Evaluator          string  `gorm:"type:varchar(32)"`
	AssessmentDocument datatypes.JSON
	EvaluationDocument datatypes.JSON
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}
