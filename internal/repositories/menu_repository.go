package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe_backend/internal/models"

	"github.com/lib/pq"
)

// MenuRepository defines the interface for menu item database operations.
type MenuRepository interface {
	CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	GetMenuItemByID(id int64) (*models.MenuItem, error)
	GetMenuItemByName(name string) (*models.MenuItem, error)
	GetMenuItems(filters models.MenuItemFilters) ([]models.MenuItem, error)
	UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error
	DeleteMenuItem(executor SQLExecutor, id int64) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

const menuItemColumns = `id, name, description, category, price, image, is_available, preparation_time, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...interface{}) error }) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var description, image sql.NullString
	var prepTime sql.NullInt64
	err := row.Scan(
		&item.ID, &item.Name, &description, &item.Category, &item.Price,
		&image, &item.IsAvailable, &prepTime, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		item.Description = &description.String
	}
	if image.Valid {
		item.Image = &image.String
	}
	if prepTime.Valid {
		minutes := int(prepTime.Int64)
		item.PreparationTime = &minutes
	}
	return item, nil
}

// CreateMenuItem inserts a new menu item.
func (r *menuRepository) CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items (name, description, category, price, image, is_available, preparation_time, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = currentTime
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		item.Name, item.Description, item.Category, item.Price,
		item.Image, item.IsAvailable, item.PreparationTime, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// GetMenuItemByID retrieves a menu item by its ID.
func (r *menuRepository) GetMenuItemByID(id int64) (*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	item, err := scanMenuItem(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetMenuItemByName retrieves a menu item by its unique name.
func (r *menuRepository) GetMenuItemByName(name string) (*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE name = $1`
	item, err := scanMenuItem(r.db.QueryRow(query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by name %s: %v", ErrDatabaseError, name, err)
	}
	return item, nil
}

// GetMenuItems retrieves menu items with optional filters, ordered by category then name.
func (r *menuRepository) GetMenuItems(filters models.MenuItemFilters) ([]models.MenuItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + menuItemColumns + ` FROM menu_items`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.Available != nil {
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", argCount))
		args = append(args, *filters.Available)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY category ASC, name ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// UpdateMenuItem updates an existing menu item.
func (r *menuRepository) UpdateMenuItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu_items SET
	            name = $1, description = $2, category = $3, price = $4,
	            image = $5, is_available = $6, preparation_time = $7, updated_at = $8
	          WHERE id = $9`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.Name, item.Description, item.Category, item.Price,
		item.Image, item.IsAvailable, item.PreparationTime, item.UpdatedAt, item.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating menu item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating menu item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMenuItem removes a menu item from the database.
func (r *menuRepository) DeleteMenuItem(executor SQLExecutor, id int64) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting menu item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting menu item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
