package billing

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/pkg/apperrors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"
	"gorm.io/gorm"
)

// ============================================================
// StripeService - работа с платежным провайдером
// ============================================================

// Config - настройки Stripe
type Config struct {
	SecretKey string
	Currency  string
}

// SessionResult - созданная checkout-сессия
type SessionResult struct {
	SessionID string
	URL       string
}

// StripeService инкапсулирует все вызовы Stripe API.
// Идемпотентность обеспечивается ключами на операциях создания
// и локальным мьютексом per-email против гонки list-then-create.
type StripeService interface {
	// FindOrCreateCustomer ищет customer по email, создает при отсутствии
	FindOrCreateCustomer(email, userID string) (string, error)

	// EnsurePlanPrice гарантирует наличие Stripe product/price для плана
	// и кеширует их ID в строке плана
	EnsurePlanPrice(db *gorm.DB, plan *models.SubscriptionPlan) (string, error)

	// CreateSubscriptionSession создает подписочную checkout-сессию
	CreateSubscriptionSession(customerID, priceID, successURL, cancelURL string, metadata map[string]string) (*SessionResult, error)

	// CreatePaymentSession создает разовую checkout-сессию с inline-ценой
	CreatePaymentSession(customerID string, amount float64, description, successURL, cancelURL string, metadata map[string]string) (*SessionResult, error)
}

type stripeService struct {
	config   Config
	planRepo repositories.PlanRepository

	// защита от дублей customer при конкурентных запросах одного email
	emailLocks sync.Map
}

func NewStripeService(config Config, planRepo repositories.PlanRepository) StripeService {
	if config.Currency == "" {
		config.Currency = "usd"
	}
	stripe.Key = config.SecretKey

	return &stripeService{
		config:   config,
		planRepo: planRepo,
	}
}

// FindOrCreateCustomer ищет существующего customer по email и создает
// нового, если не нашел. Поиск и создание выполняются под per-email
// мьютексом, создание - с идемпотентным ключом.
func (s *stripeService) FindOrCreateCustomer(email, userID string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	lock, _ := s.emailLocks.LoadOrStore(email, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Limit = stripe.Int64(1)

	iter := customer.List(listParams)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", apperrors.ErrPaymentProvider(fmt.Errorf("customer lookup: %w", err))
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	createParams.AddMetadata("user_id", userID)
	createParams.SetIdempotencyKey("customer-create-" + userID)

	cust, err := customer.New(createParams)
	if err != nil {
		return "", apperrors.ErrPaymentProvider(fmt.Errorf("customer create: %w", err))
	}

	logger.Info("Создан Stripe customer", "customer_id", cust.ID, "user_id", userID)
	return cust.ID, nil
}

// EnsurePlanPrice возвращает Stripe price ID для плана. Если план еще
// не привязан к Stripe, создает product и recurring price и кеширует
// их ID условным UPDATE; проигравший гонку поток перечитывает план.
func (s *stripeService) EnsurePlanPrice(db *gorm.DB, plan *models.SubscriptionPlan) (string, error) {
	if plan.StripePriceID != "" {
		return plan.StripePriceID, nil
	}

	productParams := &stripe.ProductParams{
		Name: stripe.String(plan.Name),
	}
	if plan.Description != "" {
		productParams.Description = stripe.String(plan.Description)
	}
	productParams.AddMetadata("plan_id", plan.ID)
	productParams.SetIdempotencyKey("plan-product-" + plan.ID)

	prod, err := product.New(productParams)
	if err != nil {
		return "", apperrors.ErrPaymentProvider(fmt.Errorf("product create: %w", err))
	}

	currency := plan.Currency
	if currency == "" {
		currency = s.config.Currency
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(toMinorUnits(plan.Price)),
		Currency:   stripe.String(strings.ToLower(currency)),
		Recurring: &stripe.PriceRecurringParams{
			Interval:      stripe.String(string(stripe.PriceRecurringIntervalMonth)),
			IntervalCount: stripe.Int64(int64(plan.DurationMonths)),
		},
	}
	priceParams.SetIdempotencyKey("plan-price-" + plan.ID)

	pr, err := price.New(priceParams)
	if err != nil {
		return "", apperrors.ErrPaymentProvider(fmt.Errorf("price create: %w", err))
	}

	// условный UPDATE: пишем только если план еще без price
	updated, err := s.planRepo.SetStripeIDs(db, plan.ID, prod.ID, pr.ID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if updated == 0 {
		// конкурентный запрос успел раньше - берем его price
		fresh, err := s.planRepo.FindByID(db, plan.ID)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if fresh.StripePriceID != "" {
			return fresh.StripePriceID, nil
		}
	}

	logger.Info("Создан Stripe price для плана", "plan_id", plan.ID, "price_id", pr.ID)
	return pr.ID, nil
}

func (s *stripeService) CreateSubscriptionSession(customerID, priceID, successURL, cancelURL string, metadata map[string]string) (*SessionResult, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, apperrors.ErrPaymentProvider(fmt.Errorf("checkout session create: %w", err))
	}

	return &SessionResult{SessionID: sess.ID, URL: sess.URL}, nil
}

func (s *stripeService) CreatePaymentSession(customerID string, amount float64, description, successURL, cancelURL string, metadata map[string]string) (*SessionResult, error) {
	if description == "" {
		description = "One-time payment"
	}

	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(s.config.Currency)),
					UnitAmount: stripe.Int64(toMinorUnits(amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, apperrors.ErrPaymentProvider(fmt.Errorf("checkout session create: %w", err))
	}

	return &SessionResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// toMinorUnits переводит сумму в минимальные единицы валюты (центы)
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
