package repositories

import (
	"learnhub_backend/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(db *gorm.DB, tx *models.PaymentTransaction) error
	FindBySessionID(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error)
	FindByUser(db *gorm.DB, userID string, limit int) ([]models.PaymentTransaction, error)
}

type paymentRepository struct{}

func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, tx *models.PaymentTransaction) error {
	return db.Create(tx).Error
}

func (r *paymentRepository) FindBySessionID(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error) {
	var payment models.PaymentTransaction
	if err := db.First(&payment, "session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByUser(db *gorm.DB, userID string, limit int) ([]models.PaymentTransaction, error) {
	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var payments []models.PaymentTransaction
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
