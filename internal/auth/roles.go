package auth

import "errors"

// Роли пользователей платформы
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// IsAdmin проверяет, является ли пользователь администратором
func IsAdmin(claims *Claims) bool {
	return claims.Role == RoleAdmin
}

// IsInstructorOrHigher - преподаватель или администратор
func IsInstructorOrHigher(claims *Claims) bool {
	return claims.Role == RoleInstructor || claims.Role == RoleAdmin
}

// ValidateRole проверяет валидность роли
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return nil
	default:
		return errors.New("invalid role")
	}
}
