package services

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/dto"
)

// InvoiceSvcFacade defines operations on customer invoices.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoice applies header/item changes. Manual status transitions
	// into or out of the derived states, or any status change once a payment
	// exists, are rejected.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice without payments.
	DeleteInvoice(ctx context.Context, invoiceID string) error

	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error)

	// ConvertToChallan creates a delivery challan from the invoice and records
	// the link id; a second conversion is rejected.
	ConvertToChallan(ctx context.Context, invoiceID string, req dto.ConvertInvoiceToChallanRequest) (*domain.DeliveryChallan, error)
}

// PurchaseOrderSvcFacade defines the supplier-side counterpart operations.
type PurchaseOrderSvcFacade interface {
	CreatePurchaseOrder(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*domain.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, purchaseOrderID string, req dto.UpdatePurchaseOrderRequest) (*domain.PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, purchaseOrderID string) error
	GetPurchaseOrderByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, supplierID string) ([]domain.PurchaseOrder, error)
}
