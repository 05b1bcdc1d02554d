package repositories

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvoiceReader defines read operations for invoice data. Loaded invoices
// always include their items and payments.
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices, newest first. customerID filters when non-empty.
	ListInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error)

	// FindAllInvoices retrieves every invoice for the snapshot exporter.
	FindAllInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice rewrites the invoice header and items. Payments are
	// append-only and not touched here.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceTransactionSupport defines operations used inside payment and
// conversion transactions.
type InvoiceTransactionSupport interface {
	// FindInvoiceByIDForUpdate loads and row-locks one invoice.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// FindOutstandingByCustomerForUpdate loads and row-locks the customer's
	// non-draft invoices ordered by issue date ascending (insertion order as
	// tie-break), for oldest-first allocation.
	FindOutstandingByCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) ([]domain.Invoice, error)

	// AppendPaymentInTx appends one immutable payment row to an invoice.
	AppendPaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, payment domain.Payment) error

	// SetChallanLinkInTx records the delivery challan conversion link.
	SetChallanLinkInTx(ctx context.Context, tx pgx.Tx, invoiceID string, challanID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoiceTransactionSupport
}
