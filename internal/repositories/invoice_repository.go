package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cafe_backend/internal/models"

	"github.com/lib/pq"
)

// InvoiceRepository defines the interface for invoice database operations.
type InvoiceRepository interface {
	CreateInvoice(executor SQLExecutor, invoice *models.Invoice) (int64, error)
	GetInvoiceByID(id int64) (*models.Invoice, error)
	GetInvoices() ([]models.Invoice, error)
	GetInvoicesByPaymentID(paymentID int64) ([]models.Invoice, error)
	UpdateInvoice(executor SQLExecutor, invoice *models.Invoice) error
	DeleteInvoice(executor SQLExecutor, id int64) error
	DeleteInvoicesByPaymentID(executor SQLExecutor, paymentID int64) (int64, error)
}

type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository.
func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, invoice_number, payment_id, customer_name, customer_email, subtotal, tax, discount, grand_total, invoice_date, status, created_at, updated_at`

func scanInvoice(row interface{ Scan(...interface{}) error }) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var email sql.NullString
	err := row.Scan(
		&invoice.ID, &invoice.InvoiceNumber, &invoice.PaymentID, &invoice.CustomerName,
		&email, &invoice.Subtotal, &invoice.Tax, &invoice.Discount, &invoice.GrandTotal,
		&invoice.InvoiceDate, &invoice.Status, &invoice.CreatedAt, &invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		invoice.CustomerEmail = &email.String
	}
	return invoice, nil
}

// CreateInvoice inserts a new invoice.
func (r *invoiceRepository) CreateInvoice(executor SQLExecutor, invoice *models.Invoice) (int64, error) {
	query := `INSERT INTO invoices (invoice_number, payment_id, customer_name, customer_email, subtotal, tax, discount, grand_total, invoice_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`

	currentTime := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = currentTime
	}
	if invoice.UpdatedAt.IsZero() {
		invoice.UpdatedAt = currentTime
	}
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = currentTime
	}

	err := executor.QueryRow(query,
		invoice.InvoiceNumber, invoice.PaymentID, invoice.CustomerName, invoice.CustomerEmail,
		invoice.Subtotal, invoice.Tax, invoice.Discount, invoice.GrandTotal,
		invoice.InvoiceDate, invoice.Status, invoice.CreatedAt, invoice.UpdatedAt,
	).Scan(&invoice.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating invoice: %v", ErrDatabaseError, err)
	}
	return invoice.ID, nil
}

// GetInvoiceByID retrieves an invoice by its ID.
func (r *invoiceRepository) GetInvoiceByID(id int64) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	invoice, err := scanInvoice(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting invoice by ID %d: %v", ErrDatabaseError, id, err)
	}
	return invoice, nil
}

// GetInvoices retrieves all invoices, newest first.
func (r *invoiceRepository) GetInvoices() ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`
	return r.queryInvoices(query)
}

// GetInvoicesByPaymentID retrieves invoices referencing a payment.
func (r *invoiceRepository) GetInvoicesByPaymentID(paymentID int64) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE payment_id = $1 ORDER BY created_at DESC`
	return r.queryInvoices(query, paymentID)
}

func (r *invoiceRepository) queryInvoices(query string, args ...interface{}) ([]models.Invoice, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying invoices: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning invoice: %v", ErrDatabaseError, err)
		}
		invoices = append(invoices, *invoice)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating invoice rows: %v", ErrDatabaseError, err)
	}
	return invoices, nil
}

// UpdateInvoice updates an existing invoice.
func (r *invoiceRepository) UpdateInvoice(executor SQLExecutor, invoice *models.Invoice) error {
	query := `UPDATE invoices SET
	            customer_name = $1, customer_email = $2, subtotal = $3, tax = $4,
	            discount = $5, grand_total = $6, status = $7, updated_at = $8
	          WHERE id = $9`

	invoice.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		invoice.CustomerName, invoice.CustomerEmail, invoice.Subtotal, invoice.Tax,
		invoice.Discount, invoice.GrandTotal, invoice.Status, invoice.UpdatedAt, invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating invoice ID %d: %v", ErrDatabaseError, invoice.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating invoice ID %d: %v", ErrDatabaseError, invoice.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInvoice removes an invoice from the database.
func (r *invoiceRepository) DeleteInvoice(executor SQLExecutor, id int64) error {
	query := `DELETE FROM invoices WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting invoice ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting invoice ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteInvoicesByPaymentID removes all invoices referencing a payment.
func (r *invoiceRepository) DeleteInvoicesByPaymentID(executor SQLExecutor, paymentID int64) (int64, error) {
	query := `DELETE FROM invoices WHERE payment_id = $1`
	result, err := executor.Exec(query, paymentID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting invoices for payment %d: %v", ErrDatabaseError, paymentID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting invoices for payment %d: %v", ErrDatabaseError, paymentID, err)
	}
	return rowsAffected, nil
}
