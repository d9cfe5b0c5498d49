package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/internal/storage"
	"learnhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================================
// UploadService - загрузка файлов в object storage
// ============================================================

// allowedBuckets - фиксированный список логических бакетов.
// Проверяется до любого обращения к хранилищу.
var allowedBuckets = map[string]bool{
	"course-videos":     true,
	"course-materials":  true,
	"course-thumbnails": true,
}

type UploadService interface {
	Upload(ctx context.Context, db *gorm.DB, userID, bucket, folder string, file *multipart.FileHeader) (*dto.UploadResponse, error)
	List(db *gorm.DB, req *dto.UploadListRequest) ([]models.Upload, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type uploadService struct {
	store      storage.Storage
	uploadRepo repositories.UploadRepository
	maxSize    int64
}

func NewUploadService(store storage.Storage, uploadRepo repositories.UploadRepository, maxSize int64) UploadService {
	if maxSize <= 0 {
		maxSize = 50 * 1024 * 1024
	}
	return &uploadService{
		store:      store,
		uploadRepo: uploadRepo,
		maxSize:    maxSize,
	}
}

// Upload сохраняет файл и возвращает его метаданные.
// Имя генерируется сервером: {unix_millis}-{случайный суффикс}{ext},
// одинаковые исходные имена никогда не коллидируют.
func (s *uploadService) Upload(ctx context.Context, db *gorm.DB, userID, bucket, folder string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if !allowedBuckets[bucket] {
		return nil, apperrors.ErrInvalidBucket
	}
	if file == nil {
		return nil, apperrors.ErrNoFileProvided
	}
	if file.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	fileName, err := generateFileName(file.Filename)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	objectPath := fileName
	if folder != "" {
		objectPath = strings.Trim(folder, "/") + "/" + fileName
	}
	fullPath := bucket + "/" + objectPath

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.Save(ctx, fullPath, src, contentType); err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("storage save: %w", err))
	}

	record := &models.Upload{
		UserID:       userID,
		Bucket:       bucket,
		Folder:       strings.Trim(folder, "/"),
		FileName:     fileName,
		OriginalName: file.Filename,
		Path:         fullPath,
		MimeType:     contentType,
		Size:         file.Size,
	}
	if err := s.uploadRepo.Create(db, record); err != nil {
		// файл уже в хранилище - метаданные не критичны для ответа
		logger.Error("Не удалось записать метаданные загрузки",
			"path", fullPath, "error", err.Error())
	}

	publicURL, err := s.store.GetURL(ctx, fullPath)
	if err != nil {
		logger.Error("Не удалось построить публичный URL", "path", fullPath, "error", err.Error())
		publicURL = ""
	}

	return &dto.UploadResponse{
		Path:         objectPath,
		FullPath:     fullPath,
		PublicURL:    publicURL,
		Bucket:       bucket,
		FileName:     fileName,
		OriginalName: file.Filename,
		Size:         file.Size,
		Type:         contentType,
	}, nil
}

func (s *uploadService) List(db *gorm.DB, req *dto.UploadListRequest) ([]models.Upload, error) {
	filters := &repositories.UploadFilters{
		Bucket: req.Bucket,
		Folder: req.Folder,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	uploads, err := s.uploadRepo.FindAll(db, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return uploads, nil
}

// Delete удаляет файл из хранилища и его метаданные
func (s *uploadService) Delete(ctx context.Context, db *gorm.DB, id string) error {
	upload, err := s.uploadRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("Upload not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, upload.Path); err != nil {
		return apperrors.InternalError(fmt.Errorf("storage delete: %w", err))
	}

	if err := s.uploadRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateFileName строит уникальное имя файла, сохраняя расширение
func generateFileName(original string) (string, error) {
	suffix := make([]byte, 8)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}

	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext), nil
}
