package dto

// CreatePlanRequest - создание тарифного плана (admin API)
type CreatePlanRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	Description    string  `json:"description" validate:"omitempty,max=500"`
	Price          float64 `json:"price" validate:"required,gt=0"`
	Currency       string  `json:"currency" validate:"omitempty,len=3"`
	DurationMonths int     `json:"duration_months" validate:"required,min=1,max=36"`
}

// PlanResponse - тарифный план в ответе API
type PlanResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	DurationMonths int     `json:"duration_months"`
	IsActive       bool    `json:"is_active"`
}
