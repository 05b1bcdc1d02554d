package services

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/dto"
)

// CustomerAllocationResult is the outcome of allocating a customer payment.
type CustomerAllocationResult struct {
	UpdatedInvoices []domain.Invoice
	Journal         *domain.Journal
}

// SupplierAllocationResult is the outcome of allocating a supplier payment.
type SupplierAllocationResult struct {
	UpdatedOrders []domain.PurchaseOrder
	Journal       *domain.Journal
}

// PaymentSvcFacade defines payment recording and allocation. Every operation
// appends immutable payments, posts exactly one journal entry, and updates
// account balances in a single transaction.
type PaymentSvcFacade interface {
	// AddPaymentToInvoice applies the whole payment to one invoice,
	// debiting the deposit account and crediting Accounts Receivable.
	AddPaymentToInvoice(ctx context.Context, invoiceID string, req dto.AddPaymentRequest) (*domain.Invoice, *domain.Journal, error)

	// AddPaymentToPurchaseOrder applies the whole payment to one order,
	// debiting Accounts Payable and crediting the source account.
	AddPaymentToPurchaseOrder(ctx context.Context, purchaseOrderID string, req dto.AddPaymentRequest) (*domain.PurchaseOrder, *domain.Journal, error)

	// ReceiveCustomerPayment distributes a lump payment across the
	// customer's outstanding invoices oldest-first.
	ReceiveCustomerPayment(ctx context.Context, req dto.ReceiveCustomerPaymentRequest) (*CustomerAllocationResult, error)

	// MakeSupplierPayment distributes a lump payment across the supplier's
	// outstanding purchase orders oldest-first.
	MakeSupplierPayment(ctx context.Context, req dto.MakeSupplierPaymentRequest) (*SupplierAllocationResult, error)
}
