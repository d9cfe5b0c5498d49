package repositories

import (
	"time"

	"learnhub_backend/internal/models"

	"gorm.io/gorm"
)

type ReminderRepository interface {
	Create(db *gorm.DB, reminder *models.Reminder) error
	FindByID(db *gorm.DB, id string) (*models.Reminder, error)

	// FindDue возвращает пачку неотправленных напоминаний с remind_at <= now
	FindDue(db *gorm.DB, now time.Time, limit int) ([]models.Reminder, error)

	// MarkSent условно помечает напоминание отправленным.
	// Возвращает число затронутых строк: 0 означает, что напоминание
	// уже было обработано параллельным/предыдущим прогоном.
	MarkSent(db *gorm.DB, id string, sentAt time.Time) (int64, error)
}

type reminderRepository struct{}

func NewReminderRepository() ReminderRepository {
	return &reminderRepository{}
}

func (r *reminderRepository) Create(db *gorm.DB, reminder *models.Reminder) error {
	return db.Create(reminder).Error
}

func (r *reminderRepository) FindByID(db *gorm.DB, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := db.First(&reminder, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) FindDue(db *gorm.DB, now time.Time, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	query := db.Where("sent = ? AND remind_at <= ?", false, now).
		Order("remind_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) MarkSent(db *gorm.DB, id string, sentAt time.Time) (int64, error) {
	result := db.Model(&models.Reminder{}).
		Where("id = ? AND sent = ?", id, false).
		Updates(map[string]interface{}{
			"sent":    true,
			"sent_at": sentAt,
		})
	return result.RowsAffected, result.Error
}
