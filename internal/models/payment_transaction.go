package models

import "time"

// PaymentTransaction - след созданной checkout-сессии.
// Статус остается pending до подтверждения оплаты (webhook-флоу
// вне рамок этого сервиса).
type PaymentTransaction struct {
	BaseModel
	UserID      string  `gorm:"not null;index"`
	PlanID      *string `gorm:"index"` // nil для разовых платежей
	Amount      float64
	Currency    string        `gorm:"default:'usd'"`
	Status      PaymentStatus `gorm:"type:varchar(20);default:'pending'"`
	SessionID   string        `gorm:"uniqueIndex"` // ID checkout-сессии Stripe
	Mode        string        // "subscription" или "payment"
	Description string
	PaidAt      *time.Time
}
