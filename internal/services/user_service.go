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

// --- User DTOs ---

// UpdateProfileRequest carries the self-service profile fields. A password is
// rehashed only when one is supplied; other updates never touch the stored hash.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
}

// AdminUpdateUserRequest carries the administrative update fields.
type AdminUpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
	Password  *string `json:"password"`
}

// --- UserService Interface ---
type UserService interface {
	GetUserProfile(userID int64) (*models.User, error)
	UpdateProfile(userID int64, req UpdateProfileRequest) (*models.User, error)
	DeleteUser(userID int64) error
	GetUsers() ([]models.User, error)
	AdminUpdateUser(userID int64, req AdminUpdateUserRequest) (*models.User, error)
}

// --- userService Implementation ---
type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository, db *sql.DB) UserService {
	return &userService{
		userRepo: userRepo,
		db:       db,
	}
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *userService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile merges the supplied fields over the caller's record.
func (s *userService) UpdateProfile(userID int64, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.FirstName != nil {
		if utils.IsEmpty(*req.FirstName) {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrUserValidation)
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if utils.IsEmpty(*req.LastName) {
			return nil, fmt.Errorf("%w: last name cannot be empty", ErrUserValidation)
		}
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		if !utils.IsValidPasswordLength(*req.Password, minPasswordLength) {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrUserValidation, minPasswordLength)
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user in repository: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes a user record.
func (s *userService) DeleteUser(userID int64) error {
	if err := s.userRepo.DeleteUser(s.db, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetUsers lists all users with password hashes stripped.
func (s *userService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// AdminUpdateUser merges the supplied fields over any user's record,
// including role and active-flag changes.
func (s *userService) AdminUpdateUser(userID int64, req AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.FirstName != nil {
		if utils.IsEmpty(*req.FirstName) {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrUserValidation)
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if utils.IsEmpty(*req.LastName) {
			return nil, fmt.Errorf("%w: last name cannot be empty", ErrUserValidation)
		}
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !utils.IsValidEmail(email) {
			return nil, fmt.Errorf("%w: email format is invalid", ErrUserValidation)
		}
		user.Email = email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role '%s'", ErrUserValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if !utils.IsValidPasswordLength(*req.Password, minPasswordLength) {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrUserValidation, minPasswordLength)
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.UpdateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user in repository: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}
