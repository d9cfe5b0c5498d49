package dto

// SubscriptionCheckoutRequest - подписка на тариф из справочника
type SubscriptionCheckoutRequest struct {
	PlanID     string `json:"plan_id" validate:"required,uuid4"`
	SuccessURL string `json:"success_url" validate:"omitempty,url"`
	CancelURL  string `json:"cancel_url" validate:"omitempty,url"`
}

// HostedCheckoutRequest - разовая покупка по типу плана из таблицы констант
type HostedCheckoutRequest struct {
	PlanType   string `json:"plan_type" validate:"required,oneof=basic standard premium"`
	SuccessURL string `json:"success_url" validate:"omitempty,url"`
	CancelURL  string `json:"cancel_url" validate:"omitempty,url"`
}

// SimplePaymentRequest - разовый платеж с клиентской суммой.
// Сумма дополнительно проверяется сервером против min/max границ.
type SimplePaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=300"`
	SuccessURL  string  `json:"success_url" validate:"omitempty,url"`
	CancelURL   string  `json:"cancel_url" validate:"omitempty,url"`
}

// CheckoutResponse - ссылка на hosted-страницу оплаты
type CheckoutResponse struct {
	URL string `json:"url"`
}
