package pgsql

import (
	"context"
	"errors"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portsrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPurchaseOrderRepository struct {
	BaseRepository
}

// newPgxPurchaseOrderRepository creates a new repository for purchase order data.
func newPgxPurchaseOrderRepository(pool *pgxpool.Pool) portsrepo.PurchaseOrderRepositoryFacade {
	return &PgxPurchaseOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseOrderRepository)(nil)

const purchaseOrderColumns = `purchase_order_id, order_number, supplier_id, order_date, due_date, status, previous_due, discount, tax_amount, created_at, last_updated_at`

func scanPurchaseOrder(row pgx.Row) (domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := row.Scan(
		&po.PurchaseOrderID,
		&po.OrderNumber,
		&po.SupplierID,
		&po.OrderDate,
		&po.DueDate,
		&po.Status,
		&po.PreviousDue,
		&po.Discount,
		&po.TaxAmount,
		&po.CreatedAt,
		&po.LastUpdatedAt,
	)
	return po, err
}

func (r *PgxPurchaseOrderRepository) attachOrderChildren(ctx context.Context, q dbQuerier, orders []domain.PurchaseOrder) error {
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].PurchaseOrderID
	}
	items, err := loadLineItems(ctx, q, "purchase_order_items", "purchase_order_id", ids)
	if err != nil {
		return err
	}
	payments, err := loadPayments(ctx, q, "purchase_order_payments", "purchase_order_id", ids)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].PurchaseOrderID]
		orders[i].Payments = payments[orders[i].PurchaseOrderID]
		if orders[i].Payments == nil {
			orders[i].Payments = []domain.Payment{}
		}
	}
	return nil
}

// SavePurchaseOrder persists a new purchase order with its items.
func (r *PgxPurchaseOrderRepository) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		order.PurchaseOrderID,
		order.OrderNumber,
		order.SupplierID,
		order.OrderDate,
		order.DueDate,
		order.Status,
		order.PreviousDue,
		order.Discount,
		order.TaxAmount,
		order.CreatedAt,
		order.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert purchase order "+order.PurchaseOrderID, err)
	}
	if err := insertLineItems(ctx, tx, "purchase_order_items", "purchase_order_id", order.PurchaseOrderID, order.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdatePurchaseOrder rewrites the order header and items.
func (r *PgxPurchaseOrderRepository) UpdatePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE purchase_orders
		SET order_number = $2, order_date = $3, due_date = $4, status = $5,
		    previous_due = $6, discount = $7, tax_amount = $8, last_updated_at = $9
		WHERE purchase_order_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		order.PurchaseOrderID,
		order.OrderNumber,
		order.OrderDate,
		order.DueDate,
		order.Status,
		order.PreviousDue,
		order.Discount,
		order.TaxAmount,
		order.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update purchase order "+order.PurchaseOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("purchase order " + order.PurchaseOrderID + " not found")
	}

	if err := deleteLineItems(ctx, tx, "purchase_order_items", "purchase_order_id", order.PurchaseOrderID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, "purchase_order_items", "purchase_order_id", order.PurchaseOrderID, order.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePurchaseOrder removes an order and its items.
func (r *PgxPurchaseOrderRepository) DeletePurchaseOrder(ctx context.Context, purchaseOrderID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := deleteLineItems(ctx, tx, "purchase_order_items", "purchase_order_id", purchaseOrderID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM purchase_orders WHERE purchase_order_id = $1;`, purchaseOrderID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete purchase order "+purchaseOrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("purchase order " + purchaseOrderID + " not found")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxPurchaseOrderRepository) findOrder(ctx context.Context, q dbQuerier, purchaseOrderID string, forUpdate bool) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE purchase_order_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	order, err := scanPurchaseOrder(q.QueryRow(ctx, query+`;`, purchaseOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("purchase order " + purchaseOrderID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase order by ID "+purchaseOrderID, err)
	}

	orders := []domain.PurchaseOrder{order}
	if err := r.attachOrderChildren(ctx, q, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	return r.findOrder(ctx, r.Pool, purchaseOrderID, false)
}

// FindPurchaseOrderByIDForUpdate loads and row-locks one order inside a transaction.
func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	return r.findOrder(ctx, tx, purchaseOrderID, true)
}

func (r *PgxPurchaseOrderRepository) listOrders(ctx context.Context, q dbQuerier, query string, args ...any) ([]domain.PurchaseOrder, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase orders", err)
	}
	defer rows.Close()

	orders := []domain.PurchaseOrder{}
	for rows.Next() {
		order, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase order row", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase order rows", err)
	}

	if err := r.attachOrderChildren(ctx, q, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListPurchaseOrders retrieves orders newest first, optionally filtered by supplier.
func (r *PgxPurchaseOrderRepository) ListPurchaseOrders(ctx context.Context, supplierID string) ([]domain.PurchaseOrder, error) {
	if supplierID != "" {
		query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE supplier_id = $1 ORDER BY order_date DESC, created_at DESC;`
		return r.listOrders(ctx, r.Pool, query, supplierID)
	}
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY order_date DESC, created_at DESC;`
	return r.listOrders(ctx, r.Pool, query)
}

// FindAllPurchaseOrders retrieves every order, oldest first.
func (r *PgxPurchaseOrderRepository) FindAllPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY created_at, purchase_order_id;`
	return r.listOrders(ctx, r.Pool, query)
}

// FindOutstandingBySupplierForUpdate loads and row-locks the supplier's
// non-draft orders, oldest order date first, for allocation.
func (r *PgxPurchaseOrderRepository) FindOutstandingBySupplierForUpdate(ctx context.Context, tx pgx.Tx, supplierID string) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE supplier_id = $1 AND status != 'DRAFT'
		ORDER BY order_date, created_at
		FOR UPDATE;
	`
	return r.listOrders(ctx, tx, query, supplierID)
}

// AppendPaymentInTx appends one immutable payment row to an order.
func (r *PgxPurchaseOrderRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, purchaseOrderID string, payment domain.Payment) error {
	return insertPayment(ctx, tx, "purchase_order_payments", "purchase_order_id", purchaseOrderID, payment)
}
