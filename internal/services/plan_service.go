package services

import (
	"errors"

	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================================
// PlanService - справочник тарифных планов
// ============================================================

type PlanService interface {
	CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(db *gorm.DB, id string) (*dto.PlanResponse, error)
	ListActive(db *gorm.DB) ([]dto.PlanResponse, error)
	DeactivatePlan(db *gorm.DB, id string) error
}

type planService struct {
	planRepo repositories.PlanRepository
}

func NewPlanService(planRepo repositories.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	plan := &models.SubscriptionPlan{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       req.Currency,
		DurationMonths: req.DurationMonths,
		IsActive:       true,
	}

	if err := s.planRepo.Create(db, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toPlanResponse(plan), nil
}

func (s *planService) GetPlan(db *gorm.DB, id string) (*dto.PlanResponse, error) {
	plan, err := s.planRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return toPlanResponse(plan), nil
}

func (s *planService) ListActive(db *gorm.DB) ([]dto.PlanResponse, error) {
	plans, err := s.planRepo.FindAllActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, *toPlanResponse(&plans[i]))
	}
	return out, nil
}

func (s *planService) DeactivatePlan(db *gorm.DB, id string) error {
	if _, err := s.GetPlan(db, id); err != nil {
		return err
	}
	if err := s.planRepo.Deactivate(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toPlanResponse(plan *models.SubscriptionPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:             plan.ID,
		Name:           plan.Name,
		Description:    plan.Description,
		Price:          plan.Price,
		Currency:       plan.Currency,
		DurationMonths: plan.DurationMonths,
		IsActive:       plan.IsActive,
	}
}
