package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cafe_backend/internal/models"

	"github.com/lib/pq"
)

// PaymentRepository defines the interface for payment database operations.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(id int64) (*models.Payment, error)
	GetPayments() ([]models.Payment, error)
	UpdatePayment(executor SQLExecutor, payment *models.Payment) error
	DeletePayment(executor SQLExecutor, id int64) error
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, payment_number, order_id, amount, tax, discount, total_amount, payment_method, payment_status, paid_by, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	payment := &models.Payment{}
	var paidBy sql.NullString
	err := row.Scan(
		&payment.ID, &payment.PaymentNumber, &payment.OrderID, &payment.Amount,
		&payment.Tax, &payment.Discount, &payment.TotalAmount, &payment.PaymentMethod,
		&payment.PaymentStatus, &paidBy, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paidBy.Valid {
		payment.PaidBy = &paidBy.String
	}
	return payment, nil
}

// CreatePayment inserts a new payment.
func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payments (payment_number, order_id, amount, tax, discount, total_amount, payment_method, payment_status, paid_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = currentTime
	}
	if payment.UpdatedAt.IsZero() {
		payment.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		payment.PaymentNumber, payment.OrderID, payment.Amount, payment.Tax,
		payment.Discount, payment.TotalAmount, payment.PaymentMethod,
		payment.PaymentStatus, payment.PaidBy, payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

// GetPaymentByID retrieves a payment by its ID. Invoices are fetched separately.
func (r *paymentRepository) GetPaymentByID(id int64) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	payment, err := scanPayment(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting payment by ID %d: %v", ErrDatabaseError, id, err)
	}
	return payment, nil
}

// GetPayments retrieves all payments, newest first.
func (r *paymentRepository) GetPayments() ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, *payment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

// UpdatePayment updates an existing payment.
func (r *paymentRepository) UpdatePayment(executor SQLExecutor, payment *models.Payment) error {
	query := `UPDATE payments SET
	            amount = $1, tax = $2, discount = $3, total_amount = $4,
	            payment_method = $5, payment_status = $6, paid_by = $7, updated_at = $8
	          WHERE id = $9`

	payment.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		payment.Amount, payment.Tax, payment.Discount, payment.TotalAmount,
		payment.PaymentMethod, payment.PaymentStatus, payment.PaidBy,
		payment.UpdatedAt, payment.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating payment ID %d: %v", ErrDatabaseError, payment.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating payment ID %d: %v", ErrDatabaseError, payment.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePayment removes a payment. Invoices must be deleted first by the caller.
func (r *paymentRepository) DeletePayment(executor SQLExecutor, id int64) error {
	query := `DELETE FROM payments WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting payment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting payment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
