package handlers

import (
	"net/http"

	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/services"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// UploadHandler - загрузка файлов курсов
// ============================================================================

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	// загрузка и управление файлами доступны только администратору
	uploads := r.Group("/uploads", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.List)
		uploads.DELETE("/:id", h.Delete)
	}
}

// Upload принимает multipart-форму: file + bucket (+ опциональный folder).
// Бакет проверяется по allow-list до обращения к хранилищу.
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bucket := c.PostForm("bucket")
	folder := c.PostForm("folder")

	file, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrNoFileProvided)
		return
	}

	resp, err := h.uploadService.Upload(c.Request.Context(), h.GetDB(c), userID, bucket, folder, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UploadHandler) List(c *gin.Context) {
	var req dto.UploadListRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	uploads, err := h.uploadService.List(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.uploadService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
