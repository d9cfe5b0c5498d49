package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnhub_backend/internal/email"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// ReminderService - диспетчеризация due-напоминаний
// ============================================================

type ReminderService interface {
	// DispatchDue обрабатывает пачку due-напоминаний.
	// Ошибка возвращается только если упал сам запрос выборки;
	// отказы отдельных элементов попадают в результат как failed.
	DispatchDue(db *gorm.DB) (*dto.DispatchResult, error)

	// CreateReminder создает отложенное напоминание
	CreateReminder(db *gorm.DB, req *dto.CreateReminderRequest) (*models.Reminder, error)
}

type reminderService struct {
	reminderRepo     repositories.ReminderRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
	batchSize        int
}

func NewReminderService(
	reminderRepo repositories.ReminderRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
	batchSize int,
) ReminderService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &reminderService{
		reminderRepo:     reminderRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
		batchSize:        batchSize,
	}
}

// DispatchDue обрабатывает напоминания строго последовательно.
// Каждое либо отправляется (email + in-app уведомление), либо
// попадает в результат как failed с причиной. Перед отправкой
// напоминание атомарно "захватывается" условным UPDATE, чтобы
// параллельный прогон не отправил его повторно.
func (s *reminderService) DispatchDue(db *gorm.DB) (*dto.DispatchResult, error) {
	due, err := s.reminderRepo.FindDue(db, time.Now(), s.batchSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.DispatchResult{
		Success:   true,
		Reminders: make([]dto.ReminderOutcome, 0, len(due)),
	}

	for i := range due {
		reminder := &due[i]

		outcome, processed := s.dispatchOne(db, reminder)
		if !processed {
			// захвачено параллельным прогоном - пропускаем молча
			continue
		}
		result.Reminders = append(result.Reminders, outcome)
	}

	result.ProcessedCount = len(result.Reminders)

	logger.Info("Прогон диспетчера напоминаний завершен",
		"due", len(due), "processed", result.ProcessedCount)
	return result, nil
}

// dispatchOne обрабатывает одно напоминание.
// Второй результат false означает, что элемент уже был обработан
// другим прогоном и в итоговый отчет не входит.
func (s *reminderService) dispatchOne(db *gorm.DB, reminder *models.Reminder) (dto.ReminderOutcome, bool) {
	recipient, err := s.resolveRecipient(db, reminder.UserID)
	if err != nil {
		return dto.ReminderOutcome{
			ID:     reminder.ID,
			Status: models.ReminderOutcomeFailed,
			Reason: "No email found",
		}, true
	}

	// атомарный захват: проигравший конкурентный прогон получает 0 строк
	claimed, err := s.reminderRepo.MarkSent(db, reminder.ID, time.Now())
	if err != nil {
		return dto.ReminderOutcome{
			ID:     reminder.ID,
			Status: models.ReminderOutcomeFailed,
			Reason: fmt.Sprintf("Failed to mark reminder: %v", err),
		}, true
	}
	if claimed == 0 {
		return dto.ReminderOutcome{}, false
	}

	if err := s.sendReminderEmail(recipient, reminder); err != nil {
		logger.Error("Не удалось отправить email напоминания",
			"reminder_id", reminder.ID, "error", err.Error())
		return dto.ReminderOutcome{
			ID:     reminder.ID,
			Status: models.ReminderOutcomeFailed,
			Reason: fmt.Sprintf("Failed to send email: %v", err),
		}, true
	}

	s.createInAppNotification(db, reminder)

	return dto.ReminderOutcome{
		ID:     reminder.ID,
		Status: models.ReminderOutcomeSent,
		Email:  recipient,
	}, true
}

// resolveRecipient находит email получателя через его профиль
func (s *reminderService) resolveRecipient(db *gorm.DB, userID string) (string, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return "", err
	}
	if profile.Email == "" {
		return "", errors.New("profile has no email")
	}
	return profile.Email, nil
}

func (s *reminderService) sendReminderEmail(recipient string, reminder *models.Reminder) error {
	body := reminder.Message
	if body == "" {
		body = reminder.Title
	}

	return s.emailProvider.Send(&email.Message{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Reminder: %s", reminder.Title),
		Body:    body,
	})
}

// createInAppNotification дублирует напоминание in-app уведомлением.
// Отказ здесь не влияет на исход: email уже доставлен.
func (s *reminderService) createInAppNotification(db *gorm.DB, reminder *models.Reminder) {
	data := map[string]string{"reminder_id": reminder.ID}
	if reminder.CourseID != nil {
		data["course_id"] = *reminder.CourseID
	}
	raw, _ := json.Marshal(data)

	notification := &models.Notification{
		UserID:    reminder.UserID,
		Type:      repositories.NotificationTypeReminder,
		Title:     reminder.Title,
		Message:   reminder.Message,
		ActionURL: actionURLFromMetadata(reminder.Metadata),
		Data:      datatypes.JSON(raw),
	}

	if err := s.notificationRepo.Create(db, notification); err != nil {
		logger.Error("Не удалось создать in-app уведомление",
			"reminder_id", reminder.ID, "error", err.Error())
	}
}

func actionURLFromMetadata(metadata datatypes.JSON) string {
	if len(metadata) == 0 {
		return ""
	}
	var parsed struct {
		ActionURL string `json:"action_url"`
	}
	if err := json.Unmarshal(metadata, &parsed); err != nil {
		return ""
	}
	return parsed.ActionURL
}

func (s *reminderService) CreateReminder(db *gorm.DB, req *dto.CreateReminderRequest) (*models.Reminder, error) {
	remindAt, err := time.Parse(time.RFC3339, req.RemindAt)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{
			"remind_at": "must be a valid RFC3339 timestamp",
		})
	}

	reminder := &models.Reminder{
		UserID:   req.UserID,
		Title:    req.Title,
		Message:  req.Message,
		RemindAt: remindAt,
	}
	if req.CourseID != "" {
		courseID := req.CourseID
		reminder.CourseID = &courseID
	}
	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		reminder.Metadata = datatypes.JSON(raw)
	}

	if err := s.reminderRepo.Create(db, reminder); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return reminder, nil
}
