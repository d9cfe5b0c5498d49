package services

import (
	"errors"
	"testing"
	"time"

	"learnhub_backend/internal/email"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================================
// In-memory фейки репозиториев (db-аргумент игнорируется)
// ============================================================================

type fakeReminderRepo struct {
	reminders []*models.Reminder
	findErr   error
}

func (r *fakeReminderRepo) Create(_ *gorm.DB, reminder *models.Reminder) error {
	r.reminders = append(r.reminders, reminder)
	return nil
}

func (r *fakeReminderRepo) FindByID(_ *gorm.DB, id string) (*models.Reminder, error) {
	for _, rem := range r.reminders {
		if rem.ID == id {
			return rem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReminderRepo) FindDue(_ *gorm.DB, now time.Time, limit int) ([]models.Reminder, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var due []models.Reminder
	for _, rem := range r.reminders {
		if !rem.Sent && !rem.RemindAt.After(now) {
			due = append(due, *rem)
		}
		if limit > 0 && len(due) == limit {
			break
		}
	}
	return due, nil
}

func (r *fakeReminderRepo) MarkSent(_ *gorm.DB, id string, sentAt time.Time) (int64, error) {
	for _, rem := range r.reminders {
		if rem.ID == id && !rem.Sent {
			rem.Sent = true
			rem.SentAt = &sentAt
			return 1, nil
		}
	}
	return 0, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func (r *fakeProfileRepo) Create(_ *gorm.DB, p *models.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) FindByUserID(_ *gorm.DB, userID string) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Update(_ *gorm.DB, p *models.Profile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) UpdateRole(_ *gorm.DB, userID string, role models.UserRole) error {
	if p, ok := r.profiles[userID]; ok {
		p.Role = role
	}
	return nil
}

type fakeNotificationRepo struct {
	created []*models.Notification
}

func (r *fakeNotificationRepo) Create(_ *gorm.DB, n *models.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) FindByID(_ *gorm.DB, _ string) (*models.Notification, error) {
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindUserNotifications(_ *gorm.DB, _ string, _ repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(_ *gorm.DB, _ string) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ *gorm.DB, _ string) error { return nil }

func (r *fakeNotificationRepo) MarkAllAsRead(_ *gorm.DB, _ string) error { return nil }

func (r *fakeNotificationRepo) DeleteOlderThan(_ *gorm.DB, _ time.Time) (int64, error) {
	return 0, nil
}

// ============================================================================
// Тесты диспетчера
// ============================================================================

func dueReminder(id, userID string) *models.Reminder {
	return &models.Reminder{
		BaseModel: models.BaseModel{ID: id},
		UserID:    userID,
		Title:     "Lesson starts soon",
		Message:   "Your lesson starts in 15 minutes",
		RemindAt:  time.Now().Add(-time.Minute),
	}
}

// TestDispatchDue_PartialFailure - из 3 due-напоминаний у второго
// нет email: ровно один failed с причиной "No email found", два sent,
// и прогон в целом успешен
func TestDispatchDue_PartialFailure(t *testing.T) {
	reminderRepo := &fakeReminderRepo{reminders: []*models.Reminder{
		dueReminder("r-1", "user-1"),
		dueReminder("r-2", "user-2"),
		dueReminder("r-3", "user-3"),
	}}
	profileRepo := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", Email: "one@example.com"},
		// user-2 без профиля
		"user-3": {UserID: "user-3", Email: "three@example.com"},
	}}
	notificationRepo := &fakeNotificationRepo{}
	mockEmail := email.NewMockProvider()

	svc := NewReminderService(reminderRepo, profileRepo, notificationRepo, mockEmail, 100)

	result, err := svc.DispatchDue(nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.ProcessedCount)
	require.Len(t, result.Reminders, 3)

	var sent, failed int
	for _, outcome := range result.Reminders {
		switch outcome.Status {
		case models.ReminderOutcomeSent:
			sent++
			assert.NotEmpty(t, outcome.Email)
		case models.ReminderOutcomeFailed:
			failed++
			assert.Equal(t, "r-2", outcome.ID)
			assert.Equal(t, "No email found", outcome.Reason)
		}
	}
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)

	// email и in-app уведомление только для успешных
	assert.Len(t, mockEmail.Sent(), 2)
	assert.Len(t, notificationRepo.created, 2)
}

// TestDispatchDue_FetchFailure - отказ выборки due-набора терминален
func TestDispatchDue_FetchFailure(t *testing.T) {
	reminderRepo := &fakeReminderRepo{findErr: errors.New("connection refused")}
	profileRepo := &fakeProfileRepo{profiles: map[string]*models.Profile{}}

	svc := NewReminderService(reminderRepo, profileRepo, &fakeNotificationRepo{}, email.NewMockProvider(), 100)

	_, err := svc.DispatchDue(nil)
	assert.Error(t, err)
}

// TestDispatchDue_EmailFailure - отказ отправки дает failed с причиной,
// но не прерывает прогон
func TestDispatchDue_EmailFailure(t *testing.T) {
	reminderRepo := &fakeReminderRepo{reminders: []*models.Reminder{
		dueReminder("r-1", "user-1"),
		dueReminder("r-2", "user-2"),
	}}
	profileRepo := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", Email: "one@example.com"},
		"user-2": {UserID: "user-2", Email: "two@example.com"},
	}}
	mockEmail := email.NewMockProvider()
	mockEmail.FailNext = errors.New("smtp timeout")

	svc := NewReminderService(reminderRepo, profileRepo, &fakeNotificationRepo{}, mockEmail, 100)

	result, err := svc.DispatchDue(nil)
	require.NoError(t, err)
	require.Len(t, result.Reminders, 2)

	assert.Equal(t, models.ReminderOutcomeFailed, result.Reminders[0].Status)
	assert.Contains(t, result.Reminders[0].Reason, "Failed to send email")
	assert.Equal(t, models.ReminderOutcomeSent, result.Reminders[1].Status)
}

// TestDispatchDue_AlreadyClaimed - обработанные напоминания
// не попадают в повторный прогон
func TestDispatchDue_AlreadyClaimed(t *testing.T) {
	reminderRepo := &fakeReminderRepo{reminders: []*models.Reminder{
		dueReminder("r-1", "user-1"),
	}}
	profileRepo := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", Email: "one@example.com"},
	}}

	svc := NewReminderService(reminderRepo, profileRepo, &fakeNotificationRepo{}, email.NewMockProvider(), 100)

	first, err := svc.DispatchDue(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ProcessedCount)

	second, err := svc.DispatchDue(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ProcessedCount)
	assert.Empty(t, second.Reminders)
}
