package handlers

import (
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/validator"
)

// AppHandlers - контейнер всех HTTP-обработчиков
type AppHandlers struct {
	AuthHandler         *AuthHandler
	PlanHandler         *PlanHandler
	CheckoutHandler     *CheckoutHandler
	ReminderHandler     *ReminderHandler
	NotificationHandler *NotificationHandler
	UploadHandler       *UploadHandler
}

// NewAppHandlers собирает обработчики поверх сервисного слоя
func NewAppHandlers(registry *services.Registry, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, registry.Auth),
		PlanHandler:         NewPlanHandler(base, registry.Plans),
		CheckoutHandler:     NewCheckoutHandler(base, registry.Checkout),
		ReminderHandler:     NewReminderHandler(base, registry.Reminders),
		NotificationHandler: NewNotificationHandler(base, registry.Notification),
		UploadHandler:       NewUploadHandler(base, registry.Upload),
	}
}
