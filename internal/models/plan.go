package models

// SubscriptionPlan - справочник тарифов для checkout.
// StripeProductID/StripePriceID - кэш созданных в Stripe сущностей,
// заполняется лениво при первом создании checkout-сессии.
type SubscriptionPlan struct {
	BaseModel
	Name           string  `gorm:"not null"`
	Description    string
	Price          float64 `gorm:"not null"`
	Currency       string  `gorm:"default:'usd'"`
	DurationMonths int     `gorm:"not null;default:1"`
	IsActive       bool    `gorm:"default:true"`

	StripeProductID string `gorm:"default:''"`
	StripePriceID   string `gorm:"default:''"`
}
