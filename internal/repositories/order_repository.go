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

// OrderRepository defines the interface for order and order item database operations.
type OrderRepository interface {
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	GetOrderByID(id int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	UpdateOrder(executor SQLExecutor, order *models.Order) error
	DeleteOrder(executor SQLExecutor, id int64) error

	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrderItemByID(id int64) (*models.OrderItem, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
	UpdateOrderItem(executor SQLExecutor, item *models.OrderItem) error
	DeleteOrderItem(executor SQLExecutor, id int64) error
	DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error)

	// SumOrderItemTotals computes the sum of total_price over an order's items
	// as a single aggregate query. Run it on the same executor (transaction) as
	// the item write so the recomputed parent total cannot lose a concurrent update.
	SumOrderItemTotals(executor SQLExecutor, orderID int64) (float64, error)
	UpdateOrderTotal(executor SQLExecutor, orderID int64, total float64) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, customer_id, customer_name, order_type, status, table_number, total_amount, notes, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	order := &models.Order{}
	var customerID sql.NullInt64
	var tableNumber sql.NullInt64
	var notes sql.NullString
	err := row.Scan(
		&order.ID, &order.OrderNumber, &customerID, &order.CustomerName, &order.OrderType,
		&order.Status, &tableNumber, &order.TotalAmount, &notes, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		order.CustomerID = &customerID.Int64
	}
	if tableNumber.Valid {
		n := int(tableNumber.Int64)
		order.TableNumber = &n
	}
	if notes.Valid {
		order.Notes = &notes.String
	}
	return order, nil
}

// CreateOrder inserts a new order.
func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders (order_number, customer_id, customer_name, order_type, status, table_number, total_amount, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = currentTime
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		order.OrderNumber, order.CustomerID, order.CustomerName, order.OrderType,
		order.Status, order.TableNumber, order.TotalAmount, order.Notes,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

// GetOrderByID retrieves an order header by its ID. Items are fetched separately.
func (r *orderRepository) GetOrderByID(id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, id, err)
	}
	return order, nil
}

// GetOrders retrieves orders with optional filters, newest first.
func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.OrderType != nil && *filters.OrderType != "" {
		conditions = append(conditions, fmt.Sprintf("order_type = $%d", argCount))
		args = append(args, *filters.OrderType)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

// UpdateOrder updates an existing order header.
func (r *orderRepository) UpdateOrder(executor SQLExecutor, order *models.Order) error {
	query := `UPDATE orders SET
	            customer_name = $1, order_type = $2, status = $3, table_number = $4,
	            total_amount = $5, notes = $6, updated_at = $7
	          WHERE id = $8`

	order.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		order.CustomerName, order.OrderType, order.Status, order.TableNumber,
		order.TotalAmount, order.Notes, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order ID %d: %v", ErrDatabaseError, order.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating order ID %d: %v", ErrDatabaseError, order.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order. Items must be deleted first by the caller.
func (r *orderRepository) DeleteOrder(executor SQLExecutor, id int64) error {
	query := `DELETE FROM orders WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting order ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting order ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const orderItemColumns = `id, order_id, item_name, quantity, unit_price, total_price, special_instructions, created_at, updated_at`

func scanOrderItem(row interface{ Scan(...interface{}) error }) (*models.OrderItem, error) {
	item := &models.OrderItem{}
	var instructions sql.NullString
	err := row.Scan(
		&item.ID, &item.OrderID, &item.ItemName, &item.Quantity, &item.UnitPrice,
		&item.TotalPrice, &instructions, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if instructions.Valid {
		item.SpecialInstructions = &instructions.String
	}
	return item, nil
}

// CreateOrderItem inserts a new order item.
func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_items (order_id, item_name, quantity, unit_price, total_price, special_instructions, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = currentTime
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		item.OrderID, item.ItemName, item.Quantity, item.UnitPrice,
		item.TotalPrice, item.SpecialInstructions, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// GetOrderItemByID retrieves an order item by its ID.
func (r *orderRepository) GetOrderItemByID(id int64) (*models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`
	item, err := scanOrderItem(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetOrderItemsByOrderID retrieves all items belonging to an order.
func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id ASC`
	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// UpdateOrderItem updates an existing order item.
func (r *orderRepository) UpdateOrderItem(executor SQLExecutor, item *models.OrderItem) error {
	query := `UPDATE order_items SET
	            item_name = $1, quantity = $2, unit_price = $3, total_price = $4,
	            special_instructions = $5, updated_at = $6
	          WHERE id = $7`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		item.ItemName, item.Quantity, item.UnitPrice, item.TotalPrice,
		item.SpecialInstructions, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating order item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrderItem removes a single order item.
func (r *orderRepository) DeleteOrderItem(executor SQLExecutor, id int64) error {
	query := `DELETE FROM order_items WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting order item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting order item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrderItemsByOrderID removes all items belonging to an order.
func (r *orderRepository) DeleteOrderItemsByOrderID(executor SQLExecutor, orderID int64) (int64, error) {
	query := `DELETE FROM order_items WHERE order_id = $1`
	result, err := executor.Exec(query, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order items for order %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting order items for order %d: %v", ErrDatabaseError, orderID, err)
	}
	return rowsAffected, nil
}

// SumOrderItemTotals computes the aggregate total of an order's items.
func (r *orderRepository) SumOrderItemTotals(executor SQLExecutor, orderID int64) (float64, error) {
	query := `SELECT COALESCE(SUM(total_price), 0) FROM order_items WHERE order_id = $1`
	var total float64
	if err := executor.QueryRow(query, orderID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing order item totals for order %d: %v", ErrDatabaseError, orderID, err)
	}
	return total, nil
}

// UpdateOrderTotal writes a recomputed total amount onto an order.
func (r *orderRepository) UpdateOrderTotal(executor SQLExecutor, orderID int64, total float64) error {
	query := `UPDATE orders SET total_amount = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, total, time.Now(), orderID)
	if err != nil {
		return fmt.Errorf("%w: updating total for order %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating total for order %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
