package repositories

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PurchaseOrderReader defines read operations for purchase order data.
type PurchaseOrderReader interface {
	FindPurchaseOrderByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error)

	// ListPurchaseOrders retrieves orders, newest first. supplierID filters when non-empty.
	ListPurchaseOrders(ctx context.Context, supplierID string) ([]domain.PurchaseOrder, error)

	// FindAllPurchaseOrders retrieves every order for the snapshot exporter.
	FindAllPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error)
}

// PurchaseOrderWriter defines write operations for purchase order data.
type PurchaseOrderWriter interface {
	SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error
	UpdatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error
	DeletePurchaseOrder(ctx context.Context, purchaseOrderID string) error
}

// PurchaseOrderTransactionSupport defines operations used inside payment transactions.
type PurchaseOrderTransactionSupport interface {
	// FindPurchaseOrderByIDForUpdate loads and row-locks one order.
	FindPurchaseOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, purchaseOrderID string) (*domain.PurchaseOrder, error)

	// FindOutstandingBySupplierForUpdate loads and row-locks the supplier's
	// non-draft orders ordered by order date ascending for oldest-first allocation.
	FindOutstandingBySupplierForUpdate(ctx context.Context, tx pgx.Tx, supplierID string) ([]domain.PurchaseOrder, error)

	// AppendPaymentInTx appends one immutable payment row to an order.
	AppendPaymentInTx(ctx context.Context, tx pgx.Tx, purchaseOrderID string, payment domain.Payment) error
}

// PurchaseOrderRepositoryFacade combines all purchase-order repository interfaces.
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
	PurchaseOrderTransactionSupport
}
