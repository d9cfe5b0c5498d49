package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/email"
	"learnhub_backend/internal/handlers"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/routes"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/storage"
	"learnhub_backend/internal/validator"
	"learnhub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run - точка входа приложения: конфиг, БД, роутер, фоновые задачи.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	registry := buildServices(cfg)
	ginRouter := SetupRouter(cfg, gormDB, registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderWorker := workers.NewReminderWorker(
		gormDB,
		registry.Reminders,
		time.Duration(cfg.Reminders.IntervalMinutes)*time.Minute,
	)
	reminderWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// buildServices собирает внешние зависимости и сервисный слой
func buildServices(cfg *config.Config) *services.Registry {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.FromEmail,
			UseTLS:   cfg.Email.UseTLS,
		})
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		logger.Warn("SMTP не сконфигурирован, используется mock email-провайдер")
		emailProvider = email.NewMockProvider()
	}

	return services.NewRegistry(cfg, services.Deps{
		Storage:       storageInstance,
		EmailProvider: emailProvider,
	})
}

// SetupRouter собирает gin-роутер с полной цепочкой middleware.
// Вынесен отдельно, чтобы интеграционные тесты могли поднять
// роутер поверх тестовой БД.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, registry *services.Registry) *gin.Engine {
	appHandlers := handlers.NewAppHandlers(registry, validator.New())

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.SubscriptionPlan{},
		&models.PaymentTransaction{},
		&models.Reminder{},
		&models.Notification{},
		&models.Upload{},
	)
}

// seedFirstAdmin создает первого администратора из конфигурации.
// Роль admin назначается только здесь: через регистрацию ее не получить.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)

		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: hash,
			IsVerified:   true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		profile := &models.Profile{
			UserID:   admin.ID,
			Email:    adminEmail,
			FullName: "Platform Administrator",
			Role:     models.UserRoleAdmin,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}

		logger.Info("First admin user created", "email", adminEmail)
		return nil
	})
}
