package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe_backend/internal/models"
)

// StockRepository defines the interface for stock item database operations.
type StockRepository interface {
	CreateStockItem(executor SQLExecutor, item *models.StockItem) (int64, error)
	GetStockItemByID(id int64) (*models.StockItem, error)
	GetStockItems(filters models.StockFilters) ([]models.StockItem, error)
	GetLowStockItems() ([]models.StockItem, error)
	UpdateStockItem(executor SQLExecutor, item *models.StockItem) error
	DeleteStockItem(executor SQLExecutor, id int64) error
}

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new instance of StockRepository.
func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

const stockItemColumns = `id, ingredient_name, category, quantity, unit, minimum_stock, unit_price, supplier, expiry_date, status, created_at, updated_at`

func scanStockItem(row interface{ Scan(...interface{}) error }) (*models.StockItem, error) {
	item := &models.StockItem{}
	var supplier sql.NullString
	var expiry sql.NullTime
	err := row.Scan(
		&item.ID, &item.IngredientName, &item.Category, &item.Quantity, &item.Unit,
		&item.MinimumStock, &item.UnitPrice, &supplier, &expiry, &item.Status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplier.Valid {
		item.Supplier = &supplier.String
	}
	if expiry.Valid {
		item.ExpiryDate = &expiry.Time
	}
	return item, nil
}

// CreateStockItem inserts a new stock item. Status must be computed by the caller.
func (r *stockRepository) CreateStockItem(executor SQLExecutor, item *models.StockItem) (int64, error) {
	query := `INSERT INTO stock_items (ingredient_name, category, quantity, unit, minimum_stock, unit_price, supplier, expiry_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = currentTime
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = currentTime
	}

	var expiry sql.NullTime
	if item.ExpiryDate != nil && !item.ExpiryDate.IsZero() {
		expiry = sql.NullTime{Time: *item.ExpiryDate, Valid: true}
	}

	err := executor.QueryRow(query,
		item.IngredientName, item.Category, item.Quantity, item.Unit, item.MinimumStock,
		item.UnitPrice, item.Supplier, expiry, item.Status, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating stock item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// GetStockItemByID retrieves a stock item by its ID.
func (r *stockRepository) GetStockItemByID(id int64) (*models.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting stock item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetStockItems retrieves stock items with optional filters, ordered by ingredient name.
func (r *stockRepository) GetStockItems(filters models.StockFilters) ([]models.StockItem, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + stockItemColumns + ` FROM stock_items`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY ingredient_name ASC")

	return r.queryStockItems(queryBuilder.String(), args...)
}

// GetLowStockItems retrieves items that are low or out of stock, lowest quantity first.
func (r *stockRepository) GetLowStockItems() ([]models.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
	          WHERE status IN ($1, $2)
	          ORDER BY quantity ASC`
	return r.queryStockItems(query, models.StockStatusLowStock, models.StockStatusOutOfStock)
}

func (r *stockRepository) queryStockItems(query string, args ...interface{}) ([]models.StockItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stock items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.StockItem{}
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning stock item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// UpdateStockItem updates an existing stock item.
func (r *stockRepository) UpdateStockItem(executor SQLExecutor, item *models.StockItem) error {
	query := `UPDATE stock_items SET
	            ingredient_name = $1, category = $2, quantity = $3, unit = $4,
	            minimum_stock = $5, unit_price = $6, supplier = $7, expiry_date = $8,
	            status = $9, updated_at = $10
	          WHERE id = $11`

	item.UpdatedAt = time.Now()
	var expiry sql.NullTime
	if item.ExpiryDate != nil && !item.ExpiryDate.IsZero() {
		expiry = sql.NullTime{Time: *item.ExpiryDate, Valid: true}
	}

	result, err := executor.Exec(query,
		item.IngredientName, item.Category, item.Quantity, item.Unit,
		item.MinimumStock, item.UnitPrice, item.Supplier, expiry,
		item.Status, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating stock item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating stock item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStockItem removes a stock item from the database.
func (r *stockRepository) DeleteStockItem(executor SQLExecutor, id int64) error {
	query := `DELETE FROM stock_items WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting stock item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting stock item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
