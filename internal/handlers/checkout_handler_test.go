package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupCheckoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.CORSMiddleware())

	// сервис не нужен: до хендлера эти запросы не доходят
	h := NewCheckoutHandler(NewBaseHandler(validator.New()), nil)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	return r
}

// TestCheckout_PreflightBypassesAuth - OPTIONS на checkout-маршруты
// возвращает пустой 200 с CORS-заголовками без аутентификации
func TestCheckout_PreflightBypassesAuth(t *testing.T) {
	r := setupCheckoutRouter()

	for _, path := range []string{
		"/api/v1/checkout/subscription",
		"/api/v1/checkout/session",
		"/api/v1/checkout/payment",
	} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
	}
}

// TestCheckout_PostRequiresAuth - POST без токена отклоняется до хендлера
func TestCheckout_PostRequiresAuth(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	r := setupCheckoutRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
