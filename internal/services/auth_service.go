package services

import (
	"errors"
	"strings"

	"learnhub_backend/internal/auth"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================================
// AuthService - регистрация, вход, выпуск токенов
// ============================================================

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Register создает учетную запись и профиль в одной транзакции.
// Роль admin через регистрацию получить нельзя.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	exists, err := s.userRepo.ExistsByEmail(db, email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRoleStudent
	if req.Role == string(models.UserRoleInstructor) {
		role = models.UserRoleInstructor
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	profile := &models.Profile{
		Email:    email,
		FullName: req.FullName,
		Role:     role,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return s.profileRepo.Create(tx, profile)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user, profile)
}

// Login проверяет креденшелы и выпускает access-токен.
// Несуществующий email и неверный пароль неразличимы в ответе.
func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.profileRepo.FindByUserID(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user, profile)
}

func (s *authService) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.ProfileResponse{
		UserID:   profile.UserID,
		Email:    profile.Email,
		FullName: profile.FullName,
		Role:     profile.Role,
	}, nil
}

func (s *authService) buildAuthResponse(user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(profile.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User: &dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
		Profile: &dto.ProfileResponse{
			UserID:   profile.UserID,
			Email:    profile.Email,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	}, nil
}
