package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
	"cafe_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrBillingValidation = errors.New("billing data validation error")
)

// --- Payment DTOs ---

// CreatePaymentRequest is used for recording a new payment.
type CreatePaymentRequest struct {
	OrderID       int64    `json:"orderId" binding:"required"`
	Amount        float64  `json:"amount" binding:"required"`
	Tax           *float64 `json:"tax"`
	Discount      *float64 `json:"discount"`
	PaymentMethod *string  `json:"paymentMethod"`
	PaymentStatus *string  `json:"paymentStatus"`
	PaidBy        *string  `json:"paidBy"`
}

// UpdatePaymentRequest merges supplied fields over an existing payment.
type UpdatePaymentRequest struct {
	Amount        *float64 `json:"amount"`
	Tax           *float64 `json:"tax"`
	Discount      *float64 `json:"discount"`
	PaymentMethod *string  `json:"paymentMethod"`
	PaymentStatus *string  `json:"paymentStatus"`
	PaidBy        *string  `json:"paidBy"`
}

// --- Invoice DTOs ---

// CreateInvoiceRequest is used for issuing an invoice against a payment.
type CreateInvoiceRequest struct {
	PaymentID     int64    `json:"paymentId" binding:"required"`
	CustomerName  string   `json:"customerName" binding:"required"`
	CustomerEmail *string  `json:"customerEmail"`
	Subtotal      float64  `json:"subtotal" binding:"required"`
	Tax           *float64 `json:"tax"`
	Discount      *float64 `json:"discount"`
	Status        *string  `json:"status"`
}

// UpdateInvoiceRequest merges supplied fields over an existing invoice.
type UpdateInvoiceRequest struct {
	CustomerName  *string  `json:"customerName"`
	CustomerEmail *string  `json:"customerEmail"`
	Subtotal      *float64 `json:"subtotal"`
	Tax           *float64 `json:"tax"`
	Discount      *float64 `json:"discount"`
	Status        *string  `json:"status"`
}

// --- BillingService Interface ---
type BillingService interface {
	CreatePayment(req CreatePaymentRequest) (*models.Payment, error)
	GetPayments() ([]models.Payment, error)
	GetPaymentByID(paymentID int64) (*models.Payment, error)
	UpdatePayment(paymentID int64, req UpdatePaymentRequest) (*models.Payment, error)
	DeletePayment(paymentID int64) error

	CreateInvoice(req CreateInvoiceRequest) (*models.Invoice, error)
	GetInvoices() ([]models.Invoice, error)
	GetInvoiceByID(invoiceID int64) (*models.Invoice, error)
	UpdateInvoice(invoiceID int64, req UpdateInvoiceRequest) (*models.Invoice, error)
	DeleteInvoice(invoiceID int64) error
}

// --- billingService Implementation ---
type billingService struct {
	paymentRepo repositories.PaymentRepository
	invoiceRepo repositories.InvoiceRepository
	db          *sql.DB // For managing transactions
}

// NewBillingService creates a new instance of BillingService.
func NewBillingService(paymentRepo repositories.PaymentRepository, invoiceRepo repositories.InvoiceRepository, db *sql.DB) BillingService {
	return &billingService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		db:          db,
	}
}

// CreatePayment records a payment. Tax and discount default to zero and the
// stored total is amount + tax - discount, rounded to two decimals. The order
// reference is stored as given without a parent lookup.
func (s *billingService) CreatePayment(req CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrBillingValidation)
	}

	tax := 0.0
	if req.Tax != nil {
		tax = *req.Tax
	}
	discount := 0.0
	if req.Discount != nil {
		discount = *req.Discount
	}

	method := models.PaymentMethodCash
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		if !models.IsValidPaymentMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("%w: unknown payment method '%s'", ErrBillingValidation, *req.PaymentMethod)
		}
		method = *req.PaymentMethod
	}

	status := models.PaymentStatusPending
	if req.PaymentStatus != nil && *req.PaymentStatus != "" {
		if !models.IsValidPaymentStatus(*req.PaymentStatus) {
			return nil, fmt.Errorf("%w: unknown payment status '%s'", ErrBillingValidation, *req.PaymentStatus)
		}
		status = *req.PaymentStatus
	}

	payment := models.Payment{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		Tax:           tax,
		Discount:      discount,
		TotalAmount:   utils.Round2(req.Amount + tax - discount),
		PaymentMethod: method,
		PaymentStatus: status,
		PaidBy:        req.PaidBy,
	}

	var createErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		payment.PaymentNumber = utils.GenerateBusinessNumber("PAY")
		_, createErr = s.paymentRepo.CreatePayment(s.db, &payment)
		if createErr == nil || !errors.Is(createErr, repositories.ErrDuplicateKey) {
			break
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", createErr)
	}

	return s.GetPaymentByID(payment.ID)
}

// GetPayments lists payments, newest first, with their invoices attached.
func (s *billingService) GetPayments() ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPayments()
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	for i := range payments {
		invoices, invErr := s.invoiceRepo.GetInvoicesByPaymentID(payments[i].ID)
		if invErr != nil {
			return nil, fmt.Errorf("failed to get invoices for payment %d: %w", payments[i].ID, invErr)
		}
		payments[i].Invoices = invoices
	}
	return payments, nil
}

// GetPaymentByID retrieves one payment with its invoices.
func (s *billingService) GetPaymentByID(paymentID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by ID from repository: %w", err)
	}

	invoices, err := s.invoiceRepo.GetInvoicesByPaymentID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices for payment %d: %w", paymentID, err)
	}
	payment.Invoices = invoices
	return payment, nil
}

// UpdatePayment merges supplied fields over an existing payment and recomputes
// the total from the merged amount, tax and discount.
func (s *billingService) UpdatePayment(paymentID int64, req UpdatePaymentRequest) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment for update: %w", err)
	}

	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, fmt.Errorf("%w: amount cannot be negative", ErrBillingValidation)
		}
		payment.Amount = *req.Amount
	}
	if req.Tax != nil {
		payment.Tax = *req.Tax
	}
	if req.Discount != nil {
		payment.Discount = *req.Discount
	}
	if req.PaymentMethod != nil {
		if !models.IsValidPaymentMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("%w: unknown payment method '%s'", ErrBillingValidation, *req.PaymentMethod)
		}
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.PaymentStatus != nil {
		if !models.IsValidPaymentStatus(*req.PaymentStatus) {
			return nil, fmt.Errorf("%w: unknown payment status '%s'", ErrBillingValidation, *req.PaymentStatus)
		}
		payment.PaymentStatus = *req.PaymentStatus
	}
	if req.PaidBy != nil {
		payment.PaidBy = req.PaidBy
	}
	payment.TotalAmount = utils.Round2(payment.Amount + payment.Tax - payment.Discount)

	if err := s.paymentRepo.UpdatePayment(s.db, payment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to update payment in repository: %w", err)
	}
	return s.GetPaymentByID(paymentID)
}

// DeletePayment removes a payment and its invoices in one transaction.
func (s *billingService) DeletePayment(paymentID int64) error {
	if _, err := s.paymentRepo.GetPaymentByID(paymentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to fetch payment for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.invoiceRepo.DeleteInvoicesByPaymentID(tx, paymentID); err != nil {
		return fmt.Errorf("failed to delete invoices for payment: %w", err)
	}
	if err := s.paymentRepo.DeletePayment(tx, paymentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	return tx.Commit()
}

// CreateInvoice issues an invoice against an existing payment. The grand total
// is subtotal + tax - discount, rounded to two decimals.
func (s *billingService) CreateInvoice(req CreateInvoiceRequest) (*models.Invoice, error) {
	if utils.IsEmpty(req.CustomerName) {
		return nil, fmt.Errorf("%w: customer name is required", ErrBillingValidation)
	}
	if req.Subtotal < 0 {
		return nil, fmt.Errorf("%w: subtotal cannot be negative", ErrBillingValidation)
	}
	if req.CustomerEmail != nil && *req.CustomerEmail != "" && !utils.IsValidEmail(*req.CustomerEmail) {
		return nil, fmt.Errorf("%w: invalid customer email format", ErrBillingValidation)
	}

	if _, err := s.paymentRepo.GetPaymentByID(req.PaymentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment for invoice: %w", err)
	}

	tax := 0.0
	if req.Tax != nil {
		tax = *req.Tax
	}
	discount := 0.0
	if req.Discount != nil {
		discount = *req.Discount
	}

	status := models.InvoiceStatusDraft
	if req.Status != nil && *req.Status != "" {
		if !models.IsValidInvoiceStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown invoice status '%s'", ErrBillingValidation, *req.Status)
		}
		status = *req.Status
	}

	invoice := models.Invoice{
		PaymentID:     req.PaymentID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Subtotal:      req.Subtotal,
		Tax:           tax,
		Discount:      discount,
		GrandTotal:    utils.Round2(req.Subtotal + tax - discount),
		Status:        status,
		InvoiceDate:   time.Now().UTC(),
	}

	var createErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		invoice.InvoiceNumber = utils.GenerateBusinessNumber("INV")
		_, createErr = s.invoiceRepo.CreateInvoice(s.db, &invoice)
		if createErr == nil || !errors.Is(createErr, repositories.ErrDuplicateKey) {
			break
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create invoice record: %w", createErr)
	}

	return s.GetInvoiceByID(invoice.ID)
}

// GetInvoices lists invoices, newest first.
func (s *billingService) GetInvoices() ([]models.Invoice, error) {
	invoices, err := s.invoiceRepo.GetInvoices()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoiceByID retrieves one invoice.
func (s *billingService) GetInvoiceByID(invoiceID int64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by ID from repository: %w", err)
	}
	return invoice, nil
}

// UpdateInvoice merges supplied fields over an existing invoice and recomputes
// the grand total from the merged subtotal, tax and discount.
func (s *billingService) UpdateInvoice(invoiceID int64, req UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetInvoiceByID(invoiceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice for update: %w", err)
	}

	if req.CustomerName != nil {
		if utils.IsEmpty(*req.CustomerName) {
			return nil, fmt.Errorf("%w: customer name cannot be empty", ErrBillingValidation)
		}
		invoice.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		if *req.CustomerEmail != "" && !utils.IsValidEmail(*req.CustomerEmail) {
			return nil, fmt.Errorf("%w: invalid customer email format", ErrBillingValidation)
		}
		invoice.CustomerEmail = req.CustomerEmail
	}
	if req.Subtotal != nil {
		if *req.Subtotal < 0 {
			return nil, fmt.Errorf("%w: subtotal cannot be negative", ErrBillingValidation)
		}
		invoice.Subtotal = *req.Subtotal
	}
	if req.Tax != nil {
		invoice.Tax = *req.Tax
	}
	if req.Discount != nil {
		invoice.Discount = *req.Discount
	}
	if req.Status != nil {
		if !models.IsValidInvoiceStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown invoice status '%s'", ErrBillingValidation, *req.Status)
		}
		invoice.Status = *req.Status
	}
	invoice.GrandTotal = utils.Round2(invoice.Subtotal + invoice.Tax - invoice.Discount)

	if err := s.invoiceRepo.UpdateInvoice(s.db, invoice); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to update invoice in repository: %w", err)
	}
	return s.GetInvoiceByID(invoiceID)
}

// DeleteInvoice removes a single invoice.
func (s *billingService) DeleteInvoice(invoiceID int64) error {
	if err := s.invoiceRepo.DeleteInvoice(s.db, invoiceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}
