package services

import (
	"errors"
	"time"

	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================================
// NotificationService - in-app уведомления
// ============================================================

type NotificationService interface {
	List(db *gorm.DB, userID string, req *dto.NotificationListRequest) (*dto.NotificationListResponse, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
	CleanupOld(db *gorm.DB, maxAge time.Duration) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(db *gorm.DB, userID string, req *dto.NotificationListRequest) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		Page:       req.Page,
		PageSize:   req.PageSize,
		OnlyUnread: req.OnlyUnread,
	}
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(db, userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			ActionURL: n.ActionURL,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	return &dto.NotificationListResponse{
		Notifications: out,
		Total:         total,
		UnreadCount:   unread,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

// MarkAsRead помечает уведомление прочитанным.
// Чужое уведомление для вызывающего неотличимо от несуществующего.
func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(db, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.NewNotFoundError("Notification not found")
		}
		return apperrors.InternalError(err)
	}

	if notification.UserID != userID {
		return apperrors.NewNotFoundError("Notification not found")
	}

	if err := s.notificationRepo.MarkAsRead(db, notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// CleanupOld удаляет старые прочитанные уведомления
func (s *notificationService) CleanupOld(db *gorm.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)

	deleted, err := s.notificationRepo.DeleteOlderThan(db, cutoff)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	if deleted > 0 {
		logger.Info("Удалены старые уведомления", "count", deleted)
	}
	return deleted, nil
}
