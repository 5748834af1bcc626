package services

import (
	"testing"
	"time"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
	"cafe_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenManager() *utils.TokenManager {
	return utils.NewTokenManager("unit-test-secret", time.Hour)
}

func TestRegisterUserValidation(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, nil, testTokenManager())

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing first name", RegisterRequest{LastName: "Doe", Email: "a@b.com", Password: "secret1"}},
		{"invalid email", RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "not-an-email", Password: "secret1"}},
		{"short password", RegisterRequest{FirstName: "Jane", LastName: "Doe", Email: "a@b.com", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(tc.req)
			assert.ErrorIs(t, err, ErrUserValidation)
		})
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		createUser: func(user *models.User) (int64, error) {
			return 0, repositories.ErrDuplicateKey
		},
	}
	svc := NewAuthService(repo, nil, testTokenManager())

	_, err := svc.RegisterUser(RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterUserSuccess(t *testing.T) {
	var stored *models.User
	repo := &fakeUserRepo{
		createUser: func(user *models.User) (int64, error) {
			user.ID = 42
			stored = user
			return 42, nil
		},
	}
	svc := NewAuthService(repo, nil, testTokenManager())

	resp, err := svc.RegisterUser(RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Email: "  Jane@Example.COM ", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(42), resp.User.ID)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.Empty(t, resp.User.PasswordHash)

	// The persisted record carries a verifiable bcrypt hash, not the password.
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestLoginUserUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{
		getUserByEmail: func(email string) (*models.User, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewAuthService(repo, nil, testTokenManager())

	_, err := svc.LoginUser(LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUserWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{
		getUserByEmail: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, PasswordHash: string(hash), IsActive: true}, nil
		},
	}
	svc := NewAuthService(repo, nil, testTokenManager())

	_, err = svc.LoginUser(LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUserInactiveAccount(t *testing.T) {
	repo := &fakeUserRepo{
		getUserByEmail: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, PasswordHash: "irrelevant", IsActive: false}, nil
		},
	}
	svc := NewAuthService(repo, nil, testTokenManager())

	_, err := svc.LoginUser(LoginRequest{Email: "jane@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestLoginUserSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{
		getUserByEmail: func(email string) (*models.User, error) {
			return &models.User{
				ID: 7, Email: email, PasswordHash: string(hash),
				Role: models.RoleStaff, IsActive: true,
			}, nil
		},
	}
	tm := testTokenManager()
	svc := NewAuthService(repo, nil, tm)

	resp, err := svc.LoginUser(LoginRequest{Email: "Staff@Example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Empty(t, resp.User.PasswordHash)

	claims, err := tm.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, models.RoleStaff, claims.Role)
}
