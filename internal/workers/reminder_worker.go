package workers

import (
	"context"
	"time"

	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/services"

	"gorm.io/gorm"
)

// ReminderWorker периодически запускает диспетчеризацию due-напоминаний.
// Тот же код пути, что и ручной запуск через internal-эндпоинт.
type ReminderWorker struct {
	db              *gorm.DB
	reminderService services.ReminderService
	interval        time.Duration
}

func NewReminderWorker(db *gorm.DB, reminderService services.ReminderService, interval time.Duration) *ReminderWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ReminderWorker{
		db:              db,
		reminderService: reminderService,
		interval:        interval,
	}
}

// Start запускает фоновый цикл диспетчеризации
func (w *ReminderWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ReminderWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Reminder worker запущен", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder worker остановлен")
			return
		case <-ticker.C:
			w.dispatchOnce()
		}
	}
}

func (w *ReminderWorker) dispatchOnce() {
	result, err := w.reminderService.DispatchDue(w.db)
	if err != nil {
		logger.WorkerLog("reminder", "dispatch", err)
		return
	}

	if result.ProcessedCount > 0 {
		logger.WorkerLog("reminder", "dispatch", nil)
	}
}
