package services

import (
	"testing"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentDerivesTotal(t *testing.T) {
	var stored models.Payment
	paymentRepo := &fakePaymentRepo{
		createPayment: func(payment *models.Payment) (int64, error) {
			payment.ID = 1
			stored = *payment
			return 1, nil
		},
		getPaymentByID: func(id int64) (*models.Payment, error) {
			copied := stored
			return &copied, nil
		},
	}
	invoiceRepo := &fakeInvoiceRepo{
		getInvoicesByPaymentID: func(paymentID int64) ([]models.Invoice, error) {
			return nil, nil
		},
	}
	svc := NewBillingService(paymentRepo, invoiceRepo, nil)

	payment, err := svc.CreatePayment(CreatePaymentRequest{
		OrderID: 5, Amount: 100, Tax: floatPtr(8.125), Discount: floatPtr(10),
	})
	require.NoError(t, err)

	assert.Equal(t, 98.13, payment.TotalAmount) // 100 + 8.125 - 10, rounded
	assert.Equal(t, models.PaymentMethodCash, payment.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPending, payment.PaymentStatus)
	assert.NotEmpty(t, payment.PaymentNumber)
}

func TestUpdatePaymentRecomputesTotalFromMergedValues(t *testing.T) {
	stored := models.Payment{
		ID: 1, OrderID: 5, Amount: 100, Tax: 10, Discount: 0, TotalAmount: 110,
		PaymentMethod: models.PaymentMethodCard, PaymentStatus: models.PaymentStatusPending,
	}
	updateCalled := false
	paymentRepo := &fakePaymentRepo{
		getPaymentByID: func(id int64) (*models.Payment, error) {
			copied := stored
			return &copied, nil
		},
		updatePayment: func(payment *models.Payment) error {
			updateCalled = true
			stored = *payment
			return nil
		},
	}
	invoiceRepo := &fakeInvoiceRepo{
		getInvoicesByPaymentID: func(paymentID int64) ([]models.Invoice, error) { return nil, nil },
	}
	svc := NewBillingService(paymentRepo, invoiceRepo, nil)

	// Discount-only update: amount and tax come from the stored record.
	payment, err := svc.UpdatePayment(1, UpdatePaymentRequest{Discount: floatPtr(25)})
	require.NoError(t, err)

	assert.True(t, updateCalled)
	assert.Equal(t, 85.0, payment.TotalAmount)
}

func TestCreateInvoiceRequiresExistingPayment(t *testing.T) {
	paymentRepo := &fakePaymentRepo{
		getPaymentByID: func(id int64) (*models.Payment, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewBillingService(paymentRepo, &fakeInvoiceRepo{}, nil)

	_, err := svc.CreateInvoice(CreateInvoiceRequest{
		PaymentID: 404, CustomerName: "Jane", Subtotal: 50,
	})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestCreateInvoiceDerivesGrandTotal(t *testing.T) {
	var stored models.Invoice
	paymentRepo := &fakePaymentRepo{
		getPaymentByID: func(id int64) (*models.Payment, error) {
			return &models.Payment{ID: id}, nil
		},
	}
	invoiceRepo := &fakeInvoiceRepo{
		createInvoice: func(invoice *models.Invoice) (int64, error) {
			invoice.ID = 2
			stored = *invoice
			return 2, nil
		},
		getInvoiceByID: func(id int64) (*models.Invoice, error) {
			copied := stored
			return &copied, nil
		},
	}
	svc := NewBillingService(paymentRepo, invoiceRepo, nil)

	invoice, err := svc.CreateInvoice(CreateInvoiceRequest{
		PaymentID: 1, CustomerName: "Jane", Subtotal: 80, Tax: floatPtr(6.4), Discount: floatPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 81.4, invoice.GrandTotal)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)
	assert.NotEmpty(t, invoice.InvoiceNumber)
	assert.False(t, invoice.InvoiceDate.IsZero())
}

func TestCreateInvoiceRejectsBadInput(t *testing.T) {
	paymentRepo := &fakePaymentRepo{
		getPaymentByID: func(id int64) (*models.Payment, error) {
			return &models.Payment{ID: id}, nil
		},
	}
	svc := NewBillingService(paymentRepo, &fakeInvoiceRepo{}, nil)

	_, err := svc.CreateInvoice(CreateInvoiceRequest{PaymentID: 1, CustomerName: "", Subtotal: 10})
	assert.ErrorIs(t, err, ErrBillingValidation)

	_, err = svc.CreateInvoice(CreateInvoiceRequest{PaymentID: 1, CustomerName: "Jane", Subtotal: -1})
	assert.ErrorIs(t, err, ErrBillingValidation)

	_, err = svc.CreateInvoice(CreateInvoiceRequest{
		PaymentID: 1, CustomerName: "Jane", Subtotal: 10, CustomerEmail: strPtr("not-an-email"),
	})
	assert.ErrorIs(t, err, ErrBillingValidation)
}
