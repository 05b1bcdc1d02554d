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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, customer_id, issue_date, due_date, status, previous_due, discount, tax_amount, challan_id, created_at, last_updated_at`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.InvoiceNumber,
		&inv.CustomerID,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Status,
		&inv.PreviousDue,
		&inv.Discount,
		&inv.TaxAmount,
		&inv.ChallanID,
		&inv.CreatedAt,
		&inv.LastUpdatedAt,
	)
	return inv, err
}

// attachInvoiceChildren loads items and payments for the given invoices.
func (r *PgxInvoiceRepository) attachInvoiceChildren(ctx context.Context, q dbQuerier, invoices []domain.Invoice) error {
	ids := make([]string, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].InvoiceID
	}
	items, err := loadLineItems(ctx, q, "invoice_items", "invoice_id", ids)
	if err != nil {
		return err
	}
	payments, err := loadPayments(ctx, q, "invoice_payments", "invoice_id", ids)
	if err != nil {
		return err
	}
	for i := range invoices {
		invoices[i].Items = items[invoices[i].InvoiceID]
		invoices[i].Payments = payments[invoices[i].InvoiceID]
		if invoices[i].Payments == nil {
			invoices[i].Payments = []domain.Payment{}
		}
	}
	return nil
}

func (r *PgxInvoiceRepository) insertInvoice(ctx context.Context, q dbQuerier, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := q.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.CustomerID,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Status,
		invoice.PreviousDue,
		invoice.Discount,
		invoice.TaxAmount,
		invoice.ChallanID,
		invoice.CreatedAt,
		invoice.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice "+invoice.InvoiceID, err)
	}
	return insertLineItems(ctx, q, "invoice_items", "invoice_id", invoice.InvoiceID, invoice.Items)
}

// SaveInvoice persists a new invoice with its items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertInvoice(ctx, tx, invoice); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateInvoice rewrites the invoice header and items. Payments are
// append-only and never rewritten here.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE invoices
		SET invoice_number = $2, issue_date = $3, due_date = $4, status = $5,
		    previous_due = $6, discount = $7, tax_amount = $8, last_updated_at = $9
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.Status,
		invoice.PreviousDue,
		invoice.Discount,
		invoice.TaxAmount,
		invoice.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoice.InvoiceID + " not found")
	}

	if err := deleteLineItems(ctx, tx, "invoice_items", "invoice_id", invoice.InvoiceID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, "invoice_items", "invoice_id", invoice.InvoiceID, invoice.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteInvoice removes an invoice and its items. The caller has verified
// there are no payments.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := deleteLineItems(ctx, tx, "invoice_items", "invoice_id", invoiceID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) findInvoice(ctx context.Context, q dbQuerier, invoiceID string, forUpdate bool) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	invoice, err := scanInvoice(q.QueryRow(ctx, query+`;`, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	invoices := []domain.Invoice{invoice}
	if err := r.attachInvoiceChildren(ctx, q, invoices); err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, r.Pool, invoiceID, false)
}

// FindInvoiceByIDForUpdate loads and row-locks one invoice inside a transaction.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, tx, invoiceID, true)
}

func (r *PgxInvoiceRepository) listInvoices(ctx context.Context, q dbQuerier, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	if err := r.attachInvoiceChildren(ctx, q, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListInvoices retrieves invoices newest first, optionally filtered by customer.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	if customerID != "" {
		query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY issue_date DESC, created_at DESC;`
		return r.listInvoices(ctx, r.Pool, query, customerID)
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date DESC, created_at DESC;`
	return r.listInvoices(ctx, r.Pool, query)
}

// FindAllInvoices retrieves every invoice, oldest first.
func (r *PgxInvoiceRepository) FindAllInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at, invoice_id;`
	return r.listInvoices(ctx, r.Pool, query)
}

// FindOutstandingByCustomerForUpdate loads and row-locks the customer's
// non-draft invoices, oldest issue date first, for allocation.
func (r *PgxInvoiceRepository) FindOutstandingByCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE customer_id = $1 AND status != 'DRAFT'
		ORDER BY issue_date, created_at
		FOR UPDATE;
	`
	return r.listInvoices(ctx, tx, query, customerID)
}

// AppendPaymentInTx appends one immutable payment row to an invoice.
func (r *PgxInvoiceRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, invoiceID string, payment domain.Payment) error {
	return insertPayment(ctx, tx, "invoice_payments", "invoice_id", invoiceID, payment)
}

// SetChallanLinkInTx records the delivery challan conversion link.
func (r *PgxInvoiceRepository) SetChallanLinkInTx(ctx context.Context, tx pgx.Tx, invoiceID string, challanID string) error {
	tag, err := tx.Exec(ctx, `UPDATE invoices SET challan_id = $2 WHERE invoice_id = $1;`, invoiceID, challanID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set challan link on invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return nil
}
