package repositories

import (
	"learnhub_backend/internal/models"

	"gorm.io/gorm"
)

type PlanRepository interface {
	Create(db *gorm.DB, plan *models.SubscriptionPlan) error
	FindByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error)
	FindAllActive(db *gorm.DB) ([]models.SubscriptionPlan, error)
	Update(db *gorm.DB, plan *models.SubscriptionPlan) error
	Deactivate(db *gorm.DB, id string) error

	// SetStripeIDs кэширует созданные в Stripe product/price на строке плана.
	// Условный UPDATE: выигрывает первый конкурентный запрос, остальные
	// перечитывают план (0 затронутых строк).
	SetStripeIDs(db *gorm.DB, planID, productID, priceID string) (int64, error)
}

type planRepository struct{}

func NewPlanRepository() PlanRepository {
	return &planRepository{}
}

func (r *planRepository) Create(db *gorm.DB, plan *models.SubscriptionPlan) error {
	return db.Create(plan).Error
}

func (r *planRepository) FindByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := db.First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindAllActive(db *gorm.DB) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := db.Where("is_active = ?", true).Order("price ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) Update(db *gorm.DB, plan *models.SubscriptionPlan) error {
	return db.Save(plan).Error
}

func (r *planRepository) Deactivate(db *gorm.DB, id string) error {
	return db.Model(&models.SubscriptionPlan{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *planRepository) SetStripeIDs(db *gorm.DB, planID, productID, priceID string) (int64, error) {
	result := db.Model(&models.SubscriptionPlan{}).
		Where("id = ? AND stripe_price_id = ''", planID).
		Updates(map[string]interface{}{
			"stripe_product_id": productID,
			"stripe_price_id":   priceID,
		})
	return result.RowsAffected, result.Error
}
