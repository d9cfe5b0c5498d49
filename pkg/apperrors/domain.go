package apperrors

import (
	"net/http"
)

// Фабрики и предопределенные ошибки бизнес-логики платформы.

// =========================================================================
// Фабричные функции (оборачивают ошибки нижних слоев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrPaymentProvider - ошибка интеграции с платежным провайдером.
// Любой отказ Stripe-вызова терминален для запроса: ретраев нет.
func ErrPaymentProvider(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "payment", "Payment provider error", http.StatusBadGateway)
}

// ErrEmailProvider - ошибка отправки email-уведомления
func ErrEmailProvider(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "email", "Email provider error", http.StatusBadGateway)
}

// =========================================================================
// Предопределенные переменные (частые статичные ошибки)
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Checkout & Payments ---

// ErrPlanNotFound - тарифный план не найден или не активен.
var ErrPlanNotFound = New(
	CodeNotFound,
	"checkout",
	"Subscription plan not found",
	http.StatusNotFound,
)

// ErrUnknownPlanType - тип плана не из таблицы констант (basic/standard/premium).
var ErrUnknownPlanType = New(
	CodeValidationFailed,
	"checkout",
	"Unknown plan type",
	http.StatusBadRequest,
)

// ErrInvalidPaymentAmount - сумма платежа вне допустимых границ.
// Сырую клиентскую сумму принимаем, но сервер проверяет min/max.
var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Payment amount is out of allowed bounds",
	http.StatusBadRequest,
)

// ErrNoVerifiedEmail - у пользователя нет email для выставления счета.
var ErrNoVerifiedEmail = New(
	CodeInvalidOperation,
	"checkout",
	"User has no verified email",
	http.StatusBadRequest,
)

// --- Uploads & Storage ---

// ErrInvalidBucket - имя бакета не входит в фиксированный allow-list.
var ErrInvalidBucket = New(
	CodeValidationFailed,
	"upload",
	"Invalid bucket name",
	http.StatusBadRequest,
)

// ErrNoFileProvided - в multipart-форме нет файла.
var ErrNoFileProvided = New(
	CodeValidationFailed,
	"upload",
	"No file provided",
	http.StatusBadRequest,
)

// ErrFileTooLarge - файл превышает максимальный размер для одного запроса.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)
