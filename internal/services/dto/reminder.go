package dto

// ReminderOutcome - результат обработки одного напоминания.
// Status: "sent" либо "failed"; Email заполнен для sent, Reason - для failed.
type ReminderOutcome struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Email  string `json:"email,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// DispatchResult - агрегированный результат dispatch-прогона.
// Возвращается с HTTP 200 даже если все элементы failed:
// частичные отказы не валят батч.
type DispatchResult struct {
	Success        bool              `json:"success"`
	ProcessedCount int               `json:"processed_count"`
	Reminders      []ReminderOutcome `json:"reminders"`
}

// CreateReminderRequest - создание напоминания (admin/instructor API)
type CreateReminderRequest struct {
	UserID   string            `json:"user_id" validate:"required,uuid4"`
	CourseID string            `json:"course_id" validate:"omitempty,uuid4"`
	Title    string            `json:"title" validate:"required,max=200"`
	Message  string            `json:"message" validate:"omitempty,max=2000"`
	RemindAt string            `json:"remind_at" validate:"required"` // RFC3339
	Metadata map[string]string `json:"metadata" validate:"omitempty"`
}
