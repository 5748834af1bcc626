package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
)

func newUserFixture(seed models.User) (*fakeUserRepo, UserService) {
	stored := seed
	repo := &fakeUserRepo{
		getUserByID: func(id int64) (*models.User, error) {
			if stored.ID != id {
				return nil, repositories.ErrNotFound
			}
			copied := stored
			return &copied, nil
		},
		updateUser: func(user *models.User) error {
			stored = *user
			return nil
		},
	}
	return repo, NewUserService(repo, nil)
}

func TestGetUserProfileStripsHash(t *testing.T) {
	_, svc := newUserFixture(models.User{ID: 3, Email: "a@b.co", PasswordHash: "secret-hash"})

	user, err := svc.GetUserProfile(3)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "a@b.co", user.Email)

	_, err = svc.GetUserProfile(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileValidation(t *testing.T) {
	_, svc := newUserFixture(models.User{ID: 3, FirstName: "Ana"})

	empty := "   "
	_, err := svc.UpdateProfile(3, UpdateProfileRequest{FirstName: &empty})
	assert.ErrorIs(t, err, ErrUserValidation)

	short := "abc"
	_, err = svc.UpdateProfile(3, UpdateProfileRequest{Password: &short})
	assert.ErrorIs(t, err, ErrUserValidation)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	oldHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo, svc := newUserFixture(models.User{ID: 3, FirstName: "Ana", PasswordHash: string(oldHash)})

	var saved models.User
	baseUpdate := repo.updateUser
	repo.updateUser = func(user *models.User) error {
		saved = *user
		return baseUpdate(user)
	}

	newPassword := "fresh-password"
	updated, err := svc.UpdateProfile(3, UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)

	assert.Empty(t, updated.PasswordHash)
	assert.NotEqual(t, string(oldHash), saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(newPassword)))
}

func TestAdminUpdateUserRoleAndEmail(t *testing.T) {
	_, svc := newUserFixture(models.User{ID: 9, FirstName: "Ben", Role: models.RoleCustomer, IsActive: true})

	badRole := "owner"
	_, err := svc.AdminUpdateUser(9, AdminUpdateUserRequest{Role: &badRole})
	assert.ErrorIs(t, err, ErrUserValidation)

	role := models.RoleStaff
	email := "  Ben@Example.COM "
	active := false
	updated, err := svc.AdminUpdateUser(9, AdminUpdateUserRequest{Role: &role, Email: &email, IsActive: &active})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStaff, updated.Role)
	assert.Equal(t, "ben@example.com", updated.Email)
	assert.False(t, updated.IsActive)
}

func TestAdminUpdateUserDuplicateEmail(t *testing.T) {
	repo, svc := newUserFixture(models.User{ID: 9, Email: "ben@example.com"})
	repo.updateUser = func(*models.User) error {
		return repositories.ErrDuplicateKey
	}

	email := "taken@example.com"
	_, err := svc.AdminUpdateUser(9, AdminUpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetUsersStripsHashes(t *testing.T) {
	repo, svc := newUserFixture(models.User{})
	repo.getUsers = func() ([]models.User, error) {
		return []models.User{
			{ID: 1, Email: "a@b.co", PasswordHash: "h1"},
			{ID: 2, Email: "c@d.co", PasswordHash: "h2"},
		}, nil
	}

	users, err := svc.GetUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}
