package repositories

import (
	"learnhub_backend/internal/models"

	"gorm.io/gorm"
)

// UploadFilters - фильтры списка загрузок
type UploadFilters struct {
	Bucket string
	Folder string
	Limit  int
	Offset int
}

type UploadRepository interface {
	Create(db *gorm.DB, upload *models.Upload) error
	FindByID(db *gorm.DB, id string) (*models.Upload, error)
	FindAll(db *gorm.DB, filters *UploadFilters) ([]models.Upload, error)
	Delete(db *gorm.DB, id string) error
}

type uploadRepository struct{}

func NewUploadRepository() UploadRepository {
	return &uploadRepository{}
}

func (r *uploadRepository) Create(db *gorm.DB, upload *models.Upload) error {
	return db.Create(upload).Error
}

func (r *uploadRepository) FindByID(db *gorm.DB, id string) (*models.Upload, error) {
	var upload models.Upload
	if err := db.First(&upload, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepository) FindAll(db *gorm.DB, filters *UploadFilters) ([]models.Upload, error) {
	query := db.Model(&models.Upload{})
	if filters != nil {
		if filters.Bucket != "" {
			query = query.Where("bucket = ?", filters.Bucket)
		}
		if filters.Folder != "" {
			query = query.Where("folder = ?", filters.Folder)
		}
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	var uploads []models.Upload
	if err := query.Order("created_at DESC").Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *uploadRepository) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Upload{}, "id = ?", id).Error
}
