package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub_backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware())

	protected := r.Group("/protected", AuthMiddleware())
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})

	staff := r.Group("/staff", AuthMiddleware(), RequireRoles(auth.RoleAdmin, auth.RoleInstructor))
	staff.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	admin := r.Group("/admin", AuthMiddleware(), AdminMiddleware())
	admin.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestAuthMiddleware_MissingToken - без токена доступ закрыт
func TestAuthMiddleware_MissingToken(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	r := setupGuardRouter()

	w := doRequest(r, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_InvalidToken - мусорный токен отклоняется
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	r := setupGuardRouter()

	w := doRequest(r, http.MethodGet, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuthMiddleware_ValidToken - валидный токен проходит
func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	r := setupGuardRouter()

	token, err := auth.GenerateToken("user-1", auth.RoleStudent)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

// TestRequireRoles - роль из claims определяет доступ:
// student не проходит на staff-маршруты, admin и instructor проходят
func TestRequireRoles(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	r := setupGuardRouter()

	cases := []struct {
		role string
		path string
		want int
	}{
		{auth.RoleStudent, "/staff", http.StatusForbidden},
		{auth.RoleInstructor, "/staff", http.StatusOK},
		{auth.RoleAdmin, "/staff", http.StatusOK},
		{auth.RoleStudent, "/admin", http.StatusForbidden},
		{auth.RoleInstructor, "/admin", http.StatusForbidden},
		{auth.RoleAdmin, "/admin", http.StatusOK},
	}

	for _, tc := range cases {
		token, err := auth.GenerateToken("user-1", tc.role)
		require.NoError(t, err)

		w := doRequest(r, http.MethodGet, tc.path, token)
		assert.Equal(t, tc.want, w.Code, "role=%s path=%s", tc.role, tc.path)
	}
}

// TestCORSMiddleware_Preflight - OPTIONS завершается пустым 200
// с CORS-заголовками ДО аутентификации
func TestCORSMiddleware_Preflight(t *testing.T) {
	auth.Init("test-secret", time.Hour)
	r := setupGuardRouter()

	// preflight на защищенный маршрут, без токена
	w := doRequest(r, http.MethodOptions, "/protected", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
