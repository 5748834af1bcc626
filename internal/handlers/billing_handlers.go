package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cafe_backend/internal/services"
	"cafe_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BillingHandler holds the billing service covering payments and invoices.
type BillingHandler struct {
	billingService services.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

// CreatePayment handles recording a new payment.
func (h *BillingHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.billingService.CreatePayment(req)
	if err != nil {
		if errors.Is(err, services.ErrBillingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreatePayment: Error from billingService.CreatePayment")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments handles listing payments with their invoices.
func (h *BillingHandler) GetPayments(c *gin.Context) {
	payments, err := h.billingService.GetPayments()
	if err != nil {
		utils.LogError(err, "GetPayments: Error from billingService.GetPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPaymentByID handles fetching a single payment with its invoices.
func (h *BillingHandler) GetPaymentByID(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment ID format.", err.Error()))
		return
	}

	payment, err := h.billingService.GetPaymentByID(paymentID)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", ""))
		} else {
			utils.LogError(err, "GetPaymentByID: Error from billingService.GetPaymentByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdatePayment handles partial updates of a payment.
func (h *BillingHandler) UpdatePayment(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment ID format.", err.Error()))
		return
	}

	var req services.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.billingService.UpdatePayment(paymentID, req)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", ""))
		} else if errors.Is(err, services.ErrBillingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdatePayment: Error from billingService.UpdatePayment")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// DeletePayment handles removing a payment and its invoices.
func (h *BillingHandler) DeletePayment(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment ID format.", err.Error()))
		return
	}

	if err := h.billingService.DeletePayment(paymentID); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", ""))
		} else {
			utils.LogError(err, "DeletePayment: Error from billingService.DeletePayment")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete payment.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}

// CreateInvoice handles issuing an invoice against a payment.
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req services.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	invoice, err := h.billingService.CreateInvoice(req)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", ""))
		} else if errors.Is(err, services.ErrBillingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateInvoice: Error from billingService.CreateInvoice")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices handles listing all invoices.
func (h *BillingHandler) GetInvoices(c *gin.Context) {
	invoices, err := h.billingService.GetInvoices()
	if err != nil {
		utils.LogError(err, "GetInvoices: Error from billingService.GetInvoices")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch invoices.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// GetInvoiceByID handles fetching a single invoice.
func (h *BillingHandler) GetInvoiceByID(c *gin.Context) {
	invoiceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid invoice ID format.", err.Error()))
		return
	}

	invoice, err := h.billingService.GetInvoiceByID(invoiceID)
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found.", ""))
		} else {
			utils.LogError(err, "GetInvoiceByID: Error from billingService.GetInvoiceByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice handles partial updates of an invoice.
func (h *BillingHandler) UpdateInvoice(c *gin.Context) {
	invoiceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid invoice ID format.", err.Error()))
		return
	}

	var req services.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	invoice, err := h.billingService.UpdateInvoice(invoiceID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found.", ""))
		} else if errors.Is(err, services.ErrBillingValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateInvoice: Error from billingService.UpdateInvoice")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles removing a single invoice.
func (h *BillingHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid invoice ID format.", err.Error()))
		return
	}

	if err := h.billingService.DeleteInvoice(invoiceID); err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found.", ""))
		} else {
			utils.LogError(err, "DeleteInvoice: Error from billingService.DeleteInvoice")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete invoice.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
