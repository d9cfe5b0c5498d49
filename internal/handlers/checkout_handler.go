package handlers

import (
	"net/http"

	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// CheckoutHandler - создание checkout-сессий
// ============================================================================

// Три независимых варианта checkout под одним префиксом.
// Preflight OPTIONS обрабатывается CORS-middleware до аутентификации,
// поэтому сюда попадают только реальные POST-запросы.
type CheckoutHandler struct {
	*BaseHandler
	checkoutService services.CheckoutService
}

func NewCheckoutHandler(base *BaseHandler, checkoutService services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:     base,
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkout := r.Group("/checkout", middleware.AuthMiddleware())
	{
		checkout.POST("/subscription", h.CreateSubscription)
		checkout.POST("/session", h.CreateHosted)
		checkout.POST("/payment", h.CreatePayment)
	}
}

// CreateSubscription - подписка на план из справочника
func (h *CheckoutHandler) CreateSubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubscriptionCheckoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.CreateSubscriptionCheckout(h.GetDB(c), userID, requestOrigin(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateHosted - разовая покупка по типу плана
func (h *CheckoutHandler) CreateHosted(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.HostedCheckoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.CreateHostedCheckout(h.GetDB(c), userID, requestOrigin(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreatePayment - разовый платеж с клиентской суммой
func (h *CheckoutHandler) CreatePayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SimplePaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.checkoutService.CreateSimplePayment(h.GetDB(c), userID, requestOrigin(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// requestOrigin возвращает Origin запроса для производных redirect-URL
func requestOrigin(c *gin.Context) string {
	return c.GetHeader("Origin")
}
