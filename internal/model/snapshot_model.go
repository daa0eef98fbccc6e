package model

import (
	"time"

	"github.com/google/uuid"
)

type Snapshot struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Timestamp  time.Time `gorm:"not null;index"`
	Content    string    `gorm:"type:text"`
	Label      string    `gorm:"type:varchar(255)"`
	Trigger    string    `gorm:"type:varchar(32);not null"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}
