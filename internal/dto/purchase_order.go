package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest defines the payload for creating a purchase order.
type CreatePurchaseOrderRequest struct {
	OrderNumber string            `json:"orderNumber" binding:"required"`
	SupplierID  string            `json:"supplierID" binding:"required"`
	OrderDate   time.Time         `json:"orderDate" binding:"required"`
	DueDate     time.Time         `json:"dueDate" binding:"required"`
	Items       []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	PreviousDue decimal.Decimal   `json:"previousDue"`
	Discount    decimal.Decimal   `json:"discount"`
	TaxAmount   decimal.Decimal   `json:"taxAmount"`
}

// UpdatePurchaseOrderRequest defines the payload for updating a purchase order.
type UpdatePurchaseOrderRequest struct {
	OrderNumber *string                `json:"orderNumber,omitempty"`
	OrderDate   *time.Time             `json:"orderDate,omitempty"`
	DueDate     *time.Time             `json:"dueDate,omitempty"`
	Items       []LineItemRequest      `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	PreviousDue *decimal.Decimal       `json:"previousDue,omitempty"`
	Discount    *decimal.Decimal       `json:"discount,omitempty"`
	TaxAmount   *decimal.Decimal       `json:"taxAmount,omitempty"`
	Status      *domain.DocumentStatus `json:"status,omitempty" binding:"omitempty,oneof=DRAFT SENT OVERDUE PARTIALLY_PAID PAID"`
}

// PurchaseOrderResponse defines the data returned for a purchase order.
type PurchaseOrderResponse struct {
	PurchaseOrderID string             `json:"purchaseOrderID"`
	OrderNumber     string             `json:"orderNumber"`
	SupplierID      string             `json:"supplierID"`
	OrderDate       time.Time          `json:"orderDate"`
	DueDate         time.Time          `json:"dueDate"`
	Items           []LineItemResponse `json:"items"`
	Status          string             `json:"status"`
	Payments        []PaymentResponse  `json:"payments"`
	PreviousDue     decimal.Decimal    `json:"previousDue"`
	Discount        decimal.Decimal    `json:"discount"`
	TaxAmount       decimal.Decimal    `json:"taxAmount"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	GrandTotal      decimal.Decimal    `json:"grandTotal"`
	TotalPaid       decimal.Decimal    `json:"totalPaid"`
	BalanceDue      decimal.Decimal    `json:"balanceDue"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ListPurchaseOrdersResponse wraps a list of purchase orders.
type ListPurchaseOrdersResponse struct {
	PurchaseOrders []PurchaseOrderResponse `json:"purchaseOrders"`
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder to its response.
func ToPurchaseOrderResponse(po *domain.PurchaseOrder) PurchaseOrderResponse {
	grandTotal := po.GrandTotal()
	totalPaid := po.TotalPaid()
	return PurchaseOrderResponse{
		PurchaseOrderID: po.PurchaseOrderID,
		OrderNumber:     po.OrderNumber,
		SupplierID:      po.SupplierID,
		OrderDate:       po.OrderDate,
		DueDate:         po.DueDate,
		Items:           ToLineItemResponses(po.Items),
		Status:          string(accounting.DeriveDocumentStatus(po.Status, grandTotal, totalPaid)),
		Payments:        ToPaymentResponses(po.Payments),
		PreviousDue:     po.PreviousDue,
		Discount:        po.Discount,
		TaxAmount:       po.TaxAmount,
		Subtotal:        po.Subtotal(),
		GrandTotal:      grandTotal,
		TotalPaid:       totalPaid,
		BalanceDue:      po.BalanceDue(),
		CreatedAt:       po.CreatedAt,
	}
}

// ToPurchaseOrderResponses converts a slice of domain.PurchaseOrder to responses.
func ToPurchaseOrderResponses(orders []domain.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses
}
