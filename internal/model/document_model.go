package model

import (
	"time"

	"ai-writing-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id             uuid.UUID                                 `gorm:"type:uuid;primaryKey"`
	Title          string                                    `gorm:"type:varchar(255);not null"`
	TitlePinned    bool                                      `gorm:"not null;default:false"`
	Content        string                                    `gorm:"type:text"`
	WritingContext datatypes.JSONType[entity.WritingContext] `gorm:"type:json"`
	ChatHistory    datatypes.JSONType[[]entity.ChatMessage]  `gorm:"type:json"`
	Experts        datatypes.JSONType[[]entity.ExpertPrompt] `gorm:"type:json"`
	LastModified   time.Time                                 `gorm:"not null;index"`
}

func (Document) TableName() string {
	return "documents"
}
