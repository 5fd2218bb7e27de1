package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudyAid struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind      string         `gorm:"type:varchar(32);not null;index"`
	Subject   string         `gorm:"type:varchar(255);not null"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Content   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (StudyAid) TableName() string {
	return "study_aids"
}
