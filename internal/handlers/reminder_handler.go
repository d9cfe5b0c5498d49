package handlers

import (
	"net/http"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// ReminderHandler - напоминания и их диспетчеризация
// ============================================================================

type ReminderHandler struct {
	*BaseHandler
	reminderService services.ReminderService
}

func NewReminderHandler(base *BaseHandler, reminderService services.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		BaseHandler:     base,
		reminderService: reminderService,
	}
}

func (h *ReminderHandler) RegisterRoutes(r *gin.RouterGroup) {
	reminders := r.Group("/reminders", middleware.AuthMiddleware())
	{
		reminders.POST("", middleware.RequireRoles(auth.RoleAdmin, auth.RoleInstructor), h.Create)
	}

	// служебный эндпоинт: запускается планировщиком или админом вручную
	internal := r.Group("/internal", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		internal.POST("/reminders/dispatch", h.Dispatch)
	}
}

// Dispatch запускает прогон диспетчера due-напоминаний.
// 500 возвращается только при отказе выборки; отказы отдельных
// напоминаний приходят в теле ответа со статусом 200.
func (h *ReminderHandler) Dispatch(c *gin.Context) {
	result, err := h.reminderService.DispatchDue(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req dto.CreateReminderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	reminder, err := h.reminderService.CreateReminder(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": reminder.ID, "remind_at": reminder.RemindAt})
}
