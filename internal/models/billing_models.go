package models

import "time"

// Payment methods.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodOnline = "online"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusFailed    = "failed"
)

// Invoice statuses.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// IsValidPaymentMethod checks if the provided method is known.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline:
		return true
	default:
		return false
	}
}

// IsValidPaymentStatus checks if the provided status is a known payment status.
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// IsValidInvoiceStatus checks if the provided status is a known invoice status.
func IsValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	default:
		return false
	}
}

// Payment represents a settlement against an order.
// TotalAmount is derived: amount + tax - discount.
type Payment struct {
	ID            int64     `json:"id"`
	PaymentNumber string    `json:"paymentNumber" db:"payment_number"`
	OrderID       int64     `json:"orderId" db:"order_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Tax           float64   `json:"tax" db:"tax"`
	Discount      float64   `json:"discount" db:"discount"`
	TotalAmount   float64   `json:"totalAmount" db:"total_amount"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	PaymentStatus string    `json:"paymentStatus" db:"payment_status"`
	PaidBy        *string   `json:"paidBy,omitempty" db:"paid_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	Invoices      []Invoice `json:"invoices"`
}

// Invoice represents a billing document referencing one payment.
// GrandTotal is derived: subtotal + tax - discount.
type Invoice struct {
	ID            int64     `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber" db:"invoice_number"`
	PaymentID     int64     `json:"paymentId" db:"payment_id"`
	CustomerName  string    `json:"customerName" db:"customer_name"`
	CustomerEmail *string   `json:"customerEmail,omitempty" db:"customer_email"`
	Subtotal      float64   `json:"subtotal" db:"subtotal"`
	Tax           float64   `json:"tax" db:"tax"`
	Discount      float64   `json:"discount" db:"discount"`
	GrandTotal    float64   `json:"grandTotal" db:"grand_total"`
	InvoiceDate   time.Time `json:"invoiceDate" db:"invoice_date"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	Payment       *Payment  `json:"payment,omitempty"`
}
