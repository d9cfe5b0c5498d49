package dto

import "learnhub_backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=150"`
	Role     string `json:"role" validate:"omitempty,oneof=student instructor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	User        *UserResponse    `json:"user"`
	Profile     *ProfileResponse `json:"profile"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	UserID   string          `json:"user_id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
}
