package repositories

import (
	"learnhub_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error
	UpdateRole(db *gorm.DB, userID string, role models.UserRole) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(db *gorm.DB, profile *models.Profile) error {
	return db.Save(profile).Error
}

func (r *profileRepository) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	return db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("role", role).Error
}
