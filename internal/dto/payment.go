package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddPaymentRequest defines the payload for attaching a payment to a single
// document or for a lump payment to be allocated.
type AddPaymentRequest struct {
	Date      time.Time       `json:"date" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	AccountID string          `json:"accountID" binding:"required"`
	Notes     string          `json:"notes"`
}

// ReceiveCustomerPaymentRequest is a lump payment received from a customer,
// to be allocated across their outstanding invoices oldest-first.
type ReceiveCustomerPaymentRequest struct {
	CustomerID string `json:"customerID" binding:"required"`
	AddPaymentRequest
}

// MakeSupplierPaymentRequest is a lump payment made to a supplier, to be
// allocated across their outstanding purchase orders oldest-first.
type MakeSupplierPaymentRequest struct {
	SupplierID string `json:"supplierID" binding:"required"`
	AddPaymentRequest
}

// PaymentResponse defines the data returned for a recorded payment.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	AccountID string          `json:"accountID"`
	Notes     string          `json:"notes,omitempty"`
}

// CustomerAllocationResponse is the result of allocating a customer payment.
type CustomerAllocationResponse struct {
	UpdatedInvoices []InvoiceResponse `json:"updatedInvoices"`
	Journal         JournalResponse   `json:"journal"`
}

// SupplierAllocationResponse is the result of allocating a supplier payment.
type SupplierAllocationResponse struct {
	UpdatedOrders []PurchaseOrderResponse `json:"updatedOrders"`
	Journal       JournalResponse         `json:"journal"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		Date:      p.Date,
		Amount:    p.Amount,
		Method:    p.Method,
		AccountID: p.AccountID,
		Notes:     p.Notes,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to responses.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
