package services

import (
	"testing"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/services/billing"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ============================================================================
// Фейки платежного провайдера и репозиториев
// ============================================================================

type fakeStripe struct {
	customers int
	sessions  int
}

func (f *fakeStripe) FindOrCreateCustomer(_, _ string) (string, error) {
	f.customers++
	return "cus_test", nil
}

func (f *fakeStripe) EnsurePlanPrice(_ *gorm.DB, _ *models.SubscriptionPlan) (string, error) {
	return "price_test", nil
}

func (f *fakeStripe) CreateSubscriptionSession(_, _, _, _ string, _ map[string]string) (*billing.SessionResult, error) {
	f.sessions++
	return &billing.SessionResult{SessionID: "cs_sub", URL: "https://pay.example/sub"}, nil
}

func (f *fakeStripe) CreatePaymentSession(_ string, _ float64, _, _, _ string, _ map[string]string) (*billing.SessionResult, error) {
	f.sessions++
	return &billing.SessionResult{SessionID: "cs_pay", URL: "https://pay.example/pay"}, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(_ *gorm.DB, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ *gorm.DB, email string) (bool, error) {
	_, err := r.FindByEmail(nil, email)
	return err == nil, nil
}

type fakePaymentRepo struct {
	created []*models.PaymentTransaction
}

func (r *fakePaymentRepo) Create(_ *gorm.DB, tx *models.PaymentTransaction) error {
	r.created = append(r.created, tx)
	return nil
}

func (r *fakePaymentRepo) FindBySessionID(_ *gorm.DB, _ string) (*models.PaymentTransaction, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) FindByUser(_ *gorm.DB, _ string, _ int) ([]models.PaymentTransaction, error) {
	return nil, nil
}

type fakePlanRepo struct {
	plans map[string]*models.SubscriptionPlan
}

func (r *fakePlanRepo) Create(_ *gorm.DB, p *models.SubscriptionPlan) error {
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) FindByID(_ *gorm.DB, id string) (*models.SubscriptionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) FindAllActive(_ *gorm.DB) ([]models.SubscriptionPlan, error) {
	return nil, nil
}

func (r *fakePlanRepo) Update(_ *gorm.DB, p *models.SubscriptionPlan) error {
	r.plans[p.ID] = p
	return nil
}

func (r *fakePlanRepo) Deactivate(_ *gorm.DB, id string) error {
	if p, ok := r.plans[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *fakePlanRepo) SetStripeIDs(_ *gorm.DB, planID, productID, priceID string) (int64, error) {
	p, ok := r.plans[planID]
	if !ok || p.StripePriceID != "" {
		return 0, nil
	}
	p.StripeProductID = productID
	p.StripePriceID = priceID
	return 1, nil
}

// ============================================================================
// Тесты checkout
// ============================================================================

func setupCheckoutService(stripe *fakeStripe, payments *fakePaymentRepo, plans *fakePlanRepo) CheckoutService {
	config.AppConfig = &config.Config{}
	config.AppConfig.Stripe.Currency = "usd"
	config.AppConfig.Stripe.MinAmount = 1
	config.AppConfig.Stripe.MaxAmount = 10000
	config.AppConfig.Stripe.SuccessURL = "https://app.example/payment-success"
	config.AppConfig.Stripe.CancelURL = "https://app.example/payment-cancelled"

	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", Email: "payer@example.com"},
	}}
	users := &fakeUserRepo{users: map[string]*models.User{}}

	return NewCheckoutService(stripe, plans, profiles, users, payments)
}

// TestSimplePayment_AmountBounds - клиентская сумма вне границ
// отклоняется до любых обращений к провайдеру
func TestSimplePayment_AmountBounds(t *testing.T) {
	stripe := &fakeStripe{}
	svc := setupCheckoutService(stripe, &fakePaymentRepo{}, &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{}})

	for _, amount := range []float64{0.5, 10001} {
		_, err := svc.CreateSimplePayment(nil, "user-1", "", &dto.SimplePaymentRequest{Amount: amount})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount, "amount=%v", amount)
	}
	assert.Zero(t, stripe.customers)
	assert.Zero(t, stripe.sessions)
}

// TestSimplePayment_Success - валидная сумма дает URL сессии
// и записанную pending-транзакцию
func TestSimplePayment_Success(t *testing.T) {
	stripe := &fakeStripe{}
	payments := &fakePaymentRepo{}
	svc := setupCheckoutService(stripe, payments, &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{}})

	resp, err := svc.CreateSimplePayment(nil, "user-1", "https://app.example", &dto.SimplePaymentRequest{
		Amount:      25,
		Description: "Course top-up",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/pay", resp.URL)

	require.Len(t, payments.created, 1)
	assert.Equal(t, models.PaymentStatusPending, payments.created[0].Status)
	assert.Equal(t, 25.0, payments.created[0].Amount)
}

// TestHostedCheckout_UnknownPlanType - тип вне таблицы констант отклоняется
func TestHostedCheckout_UnknownPlanType(t *testing.T) {
	stripe := &fakeStripe{}
	svc := setupCheckoutService(stripe, &fakePaymentRepo{}, &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{}})

	_, err := svc.CreateHostedCheckout(nil, "user-1", "", &dto.HostedCheckoutRequest{PlanType: "platinum"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownPlanType)
	assert.Zero(t, stripe.sessions)
}

// TestSubscriptionCheckout - план из справочника превращается в сессию
func TestSubscriptionCheckout(t *testing.T) {
	stripe := &fakeStripe{}
	payments := &fakePaymentRepo{}
	plans := &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{
		"plan-1": {
			BaseModel:      models.BaseModel{ID: "plan-1"},
			Name:           "Monthly",
			Price:          19.99,
			Currency:       "usd",
			DurationMonths: 1,
			IsActive:       true,
		},
	}}
	svc := setupCheckoutService(stripe, payments, plans)

	resp, err := svc.CreateSubscriptionCheckout(nil, "user-1", "", &dto.SubscriptionCheckoutRequest{PlanID: "plan-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/sub", resp.URL)

	require.Len(t, payments.created, 1)
	assert.Equal(t, "subscription", payments.created[0].Mode)
	require.NotNil(t, payments.created[0].PlanID)
	assert.Equal(t, "plan-1", *payments.created[0].PlanID)
}

// TestSubscriptionCheckout_InactivePlan - неактивный план неотличим
// от несуществующего
func TestSubscriptionCheckout_InactivePlan(t *testing.T) {
	stripe := &fakeStripe{}
	plans := &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{
		"plan-1": {BaseModel: models.BaseModel{ID: "plan-1"}, Name: "Old", IsActive: false},
	}}
	svc := setupCheckoutService(stripe, &fakePaymentRepo{}, plans)

	_, err := svc.CreateSubscriptionCheckout(nil, "user-1", "", &dto.SubscriptionCheckoutRequest{PlanID: "plan-1"})
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)

	_, err = svc.CreateSubscriptionCheckout(nil, "user-1", "", &dto.SubscriptionCheckoutRequest{PlanID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}
