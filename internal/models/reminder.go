package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reminder - отложенное уведомление, ждущее отправки.
// Создается другими модулями (курсы, дедлайны), диспетчер только
// потребляет due-записи и помечает их отправленными.
type Reminder struct {
	BaseModel
	UserID   string         `gorm:"not null;index"`
	CourseID *string        `gorm:"index"`
	Title    string         `gorm:"not null"`
	Message  string
	Metadata datatypes.JSON `gorm:"type:jsonb"` // {"action_url": "...", ...}
	RemindAt time.Time      `gorm:"not null;index"`
	Sent     bool           `gorm:"default:false;index"`
	SentAt   *time.Time
}
