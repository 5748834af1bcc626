package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cafe_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	DeleteUser(executor SQLExecutor, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	var phone sql.NullString
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&phone, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		user.Phone = &phone.String
	}
	return user, nil
}

// CreateUser inserts a new user. The PasswordHash field must already be hashed.
func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (first_name, last_name, email, password_hash, phone, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = currentTime
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Phone, user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by their ID.
func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, including the stored password hash.
func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by email %s: %v", ErrDatabaseError, email, err)
	}
	return user, nil
}

// GetUsers retrieves all users ordered by creation time descending.
func (r *userRepository) GetUsers() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

// UpdateUser updates an existing user in the database.
func (r *userRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET
	            first_name = $1, last_name = $2, email = $3, password_hash = $4,
	            phone = $5, role = $6, is_active = $7, updated_at = $8
	          WHERE id = $9`

	user.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Phone, user.Role, user.IsActive, user.UpdatedAt, user.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a user from the database.
func (r *userRepository) DeleteUser(executor SQLExecutor, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
