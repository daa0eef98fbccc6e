package model

import "time"

// Preference is a workspace-level key/value setting such as the active document.
type Preference struct {
	Key       string    `gorm:"column:pref_key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Preference) TableName() string {
	return "preferences"
}
