package models

// UserRole - роль пользователя платформы
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleInstructor UserRole = "instructor"
	UserRoleStudent    UserRole = "student"
)

// PaymentStatus - статус платежной транзакции
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Статусы обработки напоминания в результатах dispatch-прогона
const (
	ReminderOutcomeSent   = "sent"
	ReminderOutcomeFailed = "failed"
)
