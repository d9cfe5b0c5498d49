package services

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/email"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/billing"
	"learnhub_backend/internal/storage"
)

// Registry - контейнер всех сервисов приложения.
// Собирается один раз при старте.
type Registry struct {
	Auth         AuthService
	Plans        PlanService
	Checkout     CheckoutService
	Reminders    ReminderService
	Notification NotificationService
	Upload       UploadService
}

// Deps - внешние зависимости, необходимые сервисам
type Deps struct {
	Storage       storage.Storage
	EmailProvider email.Provider
}

// NewRegistry собирает сервисный слой поверх репозиториев
func NewRegistry(cfg *config.Config, deps Deps) *Registry {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	planRepo := repositories.NewPlanRepository()
	reminderRepo := repositories.NewReminderRepository()
	notificationRepo := repositories.NewNotificationRepository()
	uploadRepo := repositories.NewUploadRepository()
	paymentRepo := repositories.NewPaymentRepository()

	stripeService := billing.NewStripeService(billing.Config{
		SecretKey: cfg.Stripe.SecretKey,
		Currency:  cfg.Stripe.Currency,
	}, planRepo)

	return &Registry{
		Auth:         NewAuthService(userRepo, profileRepo),
		Plans:        NewPlanService(planRepo),
		Checkout:     NewCheckoutService(stripeService, planRepo, profileRepo, userRepo, paymentRepo),
		Reminders:    NewReminderService(reminderRepo, profileRepo, notificationRepo, deps.EmailProvider, cfg.Reminders.BatchSize),
		Notification: NewNotificationService(notificationRepo),
		Upload:       NewUploadService(deps.Storage, uploadRepo, cfg.Upload.MaxSize),
	}
}
