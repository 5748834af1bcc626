package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
	"cafe_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrUserValidation     = errors.New("user data validation error")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

const minPasswordLength = 6

// --- Data Transfer Objects (DTOs) ---

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated user.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(req RegisterRequest) (*AuthResponse, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
}

// --- authService Implementation ---
type authService struct {
	userRepo     repositories.UserRepository
	db           *sql.DB
	tokenManager *utils.TokenManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, db *sql.DB, tm *utils.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		db:           db,
		tokenManager: tm,
	}
}

// RegisterUser handles the business logic for user registration.
func (s *authService) RegisterUser(req RegisterRequest) (*AuthResponse, error) {
	if utils.IsEmpty(req.FirstName) {
		return nil, fmt.Errorf("%w: first name is required", ErrUserValidation)
	}
	if utils.IsEmpty(req.LastName) {
		return nil, fmt.Errorf("%w: last name is required", ErrUserValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: valid email is required", ErrUserValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrUserValidation, minPasswordLength)
	}

	role := models.RoleCustomer
	if req.Role != nil && *req.Role != "" {
		if !models.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role '%s'", ErrUserValidation, *req.Role)
		}
		role = *req.Role
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}

	if _, err := s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	return &AuthResponse{Token: token, User: user}, nil
}

// LoginUser verifies credentials and issues a token.
func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	return &AuthResponse{Token: token, User: user}, nil
}
