package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one billable row on a document payload.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// LineItemResponse defines the data returned for a document line.
type LineItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// CreateInvoiceRequest defines the payload for creating an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoiceNumber" binding:"required"`
	CustomerID    string            `json:"customerID" binding:"required"`
	IssueDate     time.Time         `json:"issueDate" binding:"required"`
	DueDate       time.Time         `json:"dueDate" binding:"required"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	PreviousDue   decimal.Decimal   `json:"previousDue"`
	Discount      decimal.Decimal   `json:"discount"`
	TaxAmount     decimal.Decimal   `json:"taxAmount"`
}

// UpdateInvoiceRequest defines the payload for updating an invoice.
// Status can only move between the stored states (DRAFT/SENT/OVERDUE) and
// only while the invoice has no payments.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string                `json:"invoiceNumber,omitempty"`
	IssueDate     *time.Time             `json:"issueDate,omitempty"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	Items         []LineItemRequest      `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	PreviousDue   *decimal.Decimal       `json:"previousDue,omitempty"`
	Discount      *decimal.Decimal       `json:"discount,omitempty"`
	TaxAmount     *decimal.Decimal       `json:"taxAmount,omitempty"`
	Status        *domain.DocumentStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT SENT OVERDUE PARTIALLY_PAID PAID"`
}

// InvoiceResponse defines the data returned for an invoice, including the
// derived totals and displayed status.
type InvoiceResponse struct {
	InvoiceID     string             `json:"invoiceID"`
	InvoiceNumber string             `json:"invoiceNumber"`
	CustomerID    string             `json:"customerID"`
	IssueDate     time.Time          `json:"issueDate"`
	DueDate       time.Time          `json:"dueDate"`
	Items         []LineItemResponse `json:"items"`
	Status        string             `json:"status"`
	Payments      []PaymentResponse  `json:"payments"`
	PreviousDue   decimal.Decimal    `json:"previousDue"`
	Discount      decimal.Decimal    `json:"discount"`
	TaxAmount     decimal.Decimal    `json:"taxAmount"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	GrandTotal    decimal.Decimal    `json:"grandTotal"`
	TotalPaid     decimal.Decimal    `json:"totalPaid"`
	BalanceDue    decimal.Decimal    `json:"balanceDue"`
	ChallanID     *string            `json:"challanID,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ListInvoicesResponse wraps a list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToLineItemResponses converts domain line items to responses.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = LineItemResponse{
			ItemID:      item.ItemID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total(),
		}
	}
	return responses
}

// ToLineItems converts line item requests into domain line items, assigning
// the given ids positionally. Used by services after id generation.
func ToLineItems(items []LineItemRequest, ids []string) []domain.LineItem {
	result := make([]domain.LineItem, len(items))
	for i, item := range items {
		result[i] = domain.LineItem{
			ItemID:      ids[i],
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return result
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	grandTotal := inv.GrandTotal()
	totalPaid := inv.TotalPaid()
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Items:         ToLineItemResponses(inv.Items),
		Status:        string(accounting.DeriveDocumentStatus(inv.Status, grandTotal, totalPaid)),
		Payments:      ToPaymentResponses(inv.Payments),
		PreviousDue:   inv.PreviousDue,
		Discount:      inv.Discount,
		TaxAmount:     inv.TaxAmount,
		Subtotal:      inv.Subtotal(),
		GrandTotal:    grandTotal,
		TotalPaid:     totalPaid,
		BalanceDue:    inv.BalanceDue(),
		ChallanID:     inv.ChallanID,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to responses.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
