package handlers

import (
	"net/http"

	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// PlanHandler - справочник тарифных планов
// ============================================================================

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *PlanHandler) RegisterRoutes(r *gin.RouterGroup) {
	plans := r.Group("/plans")
	{
		// чтение доступно без аутентификации: прайс показывается до входа
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)

		admin := plans.Group("", middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.POST("", h.Create)
			admin.DELETE("/:id", h.Deactivate)
		}
	}
}

func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planService.ListActive(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.planService.GetPlan(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Deactivate(c *gin.Context) {
	if err := h.planService.DeactivatePlan(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
