package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID    string `gorm:"not null;index"`
	Type      string `gorm:"not null"` // "reminder", "payment", "system"
	Title     string `gorm:"not null"`
	Message   string
	ActionURL string
	Data      datatypes.JSON `gorm:"type:jsonb"` // {"course_id": "...", "reminder_id": "..."}
	IsRead    bool           `gorm:"default:false"`
	ReadAt    *time.Time
}
