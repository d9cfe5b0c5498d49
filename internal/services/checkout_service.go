package services

import (
	"errors"
	"fmt"
	"strings"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/billing"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================================
// CheckoutService - создание checkout-сессий
// ============================================================

// planTypeEntry - строка таблицы констант для hosted-checkout
type planTypeEntry struct {
	Name   string
	Amount float64
}

// planTypeTable - фиксированные разовые тарифы, доступные по plan_type
var planTypeTable = map[string]planTypeEntry{
	"basic":    {Name: "Basic access", Amount: 9.99},
	"standard": {Name: "Standard access", Amount: 19.99},
	"premium":  {Name: "Premium access", Amount: 49.99},
}

type CheckoutService interface {
	// CreateSubscriptionCheckout - подписка на план из справочника
	CreateSubscriptionCheckout(db *gorm.DB, userID, origin string, req *dto.SubscriptionCheckoutRequest) (*dto.CheckoutResponse, error)

	// CreateHostedCheckout - разовая покупка по типу плана из таблицы констант
	CreateHostedCheckout(db *gorm.DB, userID, origin string, req *dto.HostedCheckoutRequest) (*dto.CheckoutResponse, error)

	// CreateSimplePayment - разовый платеж с клиентской суммой
	// (сумма проверяется против серверных границ)
	CreateSimplePayment(db *gorm.DB, userID, origin string, req *dto.SimplePaymentRequest) (*dto.CheckoutResponse, error)
}

type checkoutService struct {
	stripe      billing.StripeService
	planRepo    repositories.PlanRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
}

func NewCheckoutService(
	stripe billing.StripeService,
	planRepo repositories.PlanRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
) CheckoutService {
	return &checkoutService{
		stripe:      stripe,
		planRepo:    planRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *checkoutService) CreateSubscriptionCheckout(db *gorm.DB, userID, origin string, req *dto.SubscriptionCheckoutRequest) (*dto.CheckoutResponse, error) {
	plan, err := s.planRepo.FindByID(db, req.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanNotFound
	}

	email, err := s.resolveBillingEmail(db, userID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.stripe.FindOrCreateCustomer(email, userID)
	if err != nil {
		return nil, err
	}

	priceID, err := s.stripe.EnsurePlanPrice(db, plan)
	if err != nil {
		return nil, err
	}

	successURL, cancelURL := resolveRedirectURLs(origin, req.SuccessURL, req.CancelURL)

	result, err := s.stripe.CreateSubscriptionSession(customerID, priceID, successURL, cancelURL, map[string]string{
		"user_id": userID,
		"plan_id": plan.ID,
	})
	if err != nil {
		return nil, err
	}

	planID := plan.ID
	s.recordTransaction(db, &models.PaymentTransaction{
		UserID:      userID,
		PlanID:      &planID,
		Amount:      plan.Price,
		Currency:    plan.Currency,
		Status:      models.PaymentStatusPending,
		SessionID:   result.SessionID,
		Mode:        "subscription",
		Description: plan.Name,
	})

	return &dto.CheckoutResponse{URL: result.URL}, nil
}

func (s *checkoutService) CreateHostedCheckout(db *gorm.DB, userID, origin string, req *dto.HostedCheckoutRequest) (*dto.CheckoutResponse, error) {
	entry, ok := planTypeTable[strings.ToLower(req.PlanType)]
	if !ok {
		return nil, apperrors.ErrUnknownPlanType
	}

	email, err := s.resolveBillingEmail(db, userID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.stripe.FindOrCreateCustomer(email, userID)
	if err != nil {
		return nil, err
	}

	successURL, cancelURL := resolveRedirectURLs(origin, req.SuccessURL, req.CancelURL)

	result, err := s.stripe.CreatePaymentSession(customerID, entry.Amount, entry.Name, successURL, cancelURL, map[string]string{
		"user_id":   userID,
		"plan_type": req.PlanType,
	})
	if err != nil {
		return nil, err
	}

	s.recordTransaction(db, &models.PaymentTransaction{
		UserID:      userID,
		Amount:      entry.Amount,
		Currency:    config.GetConfig().Stripe.Currency,
		Status:      models.PaymentStatusPending,
		SessionID:   result.SessionID,
		Mode:        "payment",
		Description: entry.Name,
	})

	return &dto.CheckoutResponse{URL: result.URL}, nil
}

func (s *checkoutService) CreateSimplePayment(db *gorm.DB, userID, origin string, req *dto.SimplePaymentRequest) (*dto.CheckoutResponse, error) {
	cfg := config.GetConfig()

	// клиентская сумма принимается, но только внутри серверных границ
	if req.Amount < cfg.Stripe.MinAmount || req.Amount > cfg.Stripe.MaxAmount {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	email, err := s.resolveBillingEmail(db, userID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.stripe.FindOrCreateCustomer(email, userID)
	if err != nil {
		return nil, err
	}

	successURL, cancelURL := resolveRedirectURLs(origin, req.SuccessURL, req.CancelURL)

	result, err := s.stripe.CreatePaymentSession(customerID, req.Amount, req.Description, successURL, cancelURL, map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return nil, err
	}

	s.recordTransaction(db, &models.PaymentTransaction{
		UserID:      userID,
		Amount:      req.Amount,
		Currency:    cfg.Stripe.Currency,
		Status:      models.PaymentStatusPending,
		SessionID:   result.SessionID,
		Mode:        "payment",
		Description: req.Description,
	})

	return &dto.CheckoutResponse{URL: result.URL}, nil
}

// resolveBillingEmail возвращает email для выставления счета:
// сначала профиль, затем учетная запись.
func (s *checkoutService) resolveBillingEmail(db *gorm.DB, userID string) (string, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err == nil && profile.Email != "" {
		return profile.Email, nil
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNoVerifiedEmail
		}
		return "", apperrors.InternalError(err)
	}
	if user.Email == "" {
		return "", apperrors.ErrNoVerifiedEmail
	}

	return user.Email, nil
}

// recordTransaction сохраняет след созданной сессии.
// Отказ записи не валит checkout: сессия уже создана и оплачиваема.
func (s *checkoutService) recordTransaction(db *gorm.DB, tx *models.PaymentTransaction) {
	if err := s.paymentRepo.Create(db, tx); err != nil {
		logger.Error("Не удалось записать платежную транзакцию",
			"session_id", tx.SessionID, "user_id", tx.UserID, "error", err.Error())
	}
}

// resolveRedirectURLs выбирает success/cancel URL:
// явные из запроса > производные от Origin > фолбэк из конфига.
func resolveRedirectURLs(origin, successOverride, cancelOverride string) (string, string) {
	cfg := config.GetConfig()

	successURL := cfg.Stripe.SuccessURL
	cancelURL := cfg.Stripe.CancelURL

	if origin != "" {
		base := strings.TrimSuffix(origin, "/")
		successURL = fmt.Sprintf("%s/payment-success?session_id={CHECKOUT_SESSION_ID}", base)
		cancelURL = fmt.Sprintf("%s/payment-cancelled", base)
	}

	if successOverride != "" {
		successURL = successOverride
	}
	if cancelOverride != "" {
		cancelURL = cancelOverride
	}

	return successURL, cancelURL
}
