package pgsql

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portsrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for snapshot import.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// snapshotTables lists every table in child-before-parent order so the
// truncate never trips a foreign key.
var snapshotTables = []string{
	"invoice_payments",
	"invoice_items",
	"purchase_order_payments",
	"purchase_order_items",
	"challan_items",
	"credit_note_items",
	"quote_items",
	"job_items",
	"expenses",
	"credit_notes",
	"delivery_challans",
	"jobs",
	"quotes",
	"invoices",
	"purchase_orders",
	"transactions",
	"journals",
	"accounts",
}

// ImportSnapshot replaces the full persisted state with the already validated
// snapshot in one transaction. Account balances are written exactly as
// exported; the journal lines are inserted verbatim, not replayed.
func (r *PgxSnapshotRepository) ImportSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, table := range snapshotTables {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+`;`); err != nil {
			return apperrors.NewAppError(500, "failed to clear table "+table, err)
		}
	}

	if err := r.importAccounts(ctx, tx, snapshot.Accounts); err != nil {
		return err
	}
	if err := r.importJournals(ctx, tx, snapshot.Journals); err != nil {
		return err
	}
	if err := r.importInvoices(ctx, tx, snapshot.Invoices); err != nil {
		return err
	}
	if err := r.importPurchaseOrders(ctx, tx, snapshot.PurchaseOrders); err != nil {
		return err
	}
	if err := r.importQuotes(ctx, tx, snapshot.Quotes); err != nil {
		return err
	}
	if err := r.importJobs(ctx, tx, snapshot.Jobs); err != nil {
		return err
	}
	if err := r.importChallans(ctx, tx, snapshot.Challans); err != nil {
		return err
	}
	if err := r.importCreditNotes(ctx, tx, snapshot.CreditNotes); err != nil {
		return err
	}
	if err := r.importExpenses(ctx, tx, snapshot.Expenses); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxSnapshotRepository) importAccounts(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, a := range accounts {
		batch.Queue(query, a.AccountID, a.Name, a.AccountType, a.Description, a.IsSystem, a.IsActive, a.Balance, a.OpeningBalance, a.CreatedAt, a.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import accounts", err)
	}
	return nil
}

func (r *PgxSnapshotRepository) importJournals(ctx context.Context, tx pgx.Tx, journals []domain.Journal) error {
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, j := range journals {
		batch.Queue(journalQuery, j.JournalID, j.JournalDate, j.Memo, j.Status, j.Amount, j.OriginalJournalID, j.ReversingJournalID, j.CreatedAt, j.LastUpdatedAt)
		for _, t := range j.Transactions {
			batch.Queue(txnQuery, t.TransactionID, t.JournalID, t.AccountID, t.Amount, t.TransactionType, t.Notes, t.RunningBalance, t.CreatedAt, t.LastUpdatedAt)
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import journals", err)
	}
	return nil
}

func (r *PgxSnapshotRepository) importInvoices(ctx context.Context, tx pgx.Tx, invoices []domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, inv := range invoices {
		batch.Queue(query, inv.InvoiceID, inv.InvoiceNumber, inv.CustomerID, inv.IssueDate, inv.DueDate, inv.Status, inv.PreviousDue, inv.Discount, inv.TaxAmount, inv.ChallanID, inv.CreatedAt, inv.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import invoices", err)
	}

	for _, inv := range invoices {
		if err := insertLineItems(ctx, tx, "invoice_items", "invoice_id", inv.InvoiceID, inv.Items); err != nil {
			return err
		}
		for _, p := range inv.Payments {
			if err := insertPayment(ctx, tx, "invoice_payments", "invoice_id", inv.InvoiceID, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) importPurchaseOrders(ctx context.Context, tx pgx.Tx, orders []domain.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, po := range orders {
		batch.Queue(query, po.PurchaseOrderID, po.OrderNumber, po.SupplierID, po.OrderDate, po.DueDate, po.Status, po.PreviousDue, po.Discount, po.TaxAmount, po.CreatedAt, po.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import purchase orders", err)
	}

	for _, po := range orders {
		if err := insertLineItems(ctx, tx, "purchase_order_items", "purchase_order_id", po.PurchaseOrderID, po.Items); err != nil {
			return err
		}
		for _, p := range po.Payments {
			if err := insertPayment(ctx, tx, "purchase_order_payments", "purchase_order_id", po.PurchaseOrderID, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) importQuotes(ctx context.Context, tx pgx.Tx, quotes []domain.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(query, q.QuoteID, q.QuoteNumber, q.CustomerID, q.IssueDate, q.ExpiryDate, q.Status, q.Discount, q.TaxAmount, q.ConvertedToJobID, q.ConvertedToInvoiceID, q.CreatedAt, q.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import quotes", err)
	}

	for _, q := range quotes {
		if err := insertLineItems(ctx, tx, "quote_items", "quote_id", q.QuoteID, q.Items); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) importJobs(ctx context.Context, tx pgx.Tx, jobs []domain.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, j := range jobs {
		batch.Queue(query, j.JobID, j.QuoteID, j.CustomerID, j.Title, j.Status, j.CreatedAt, j.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import jobs", err)
	}

	for _, j := range jobs {
		if err := insertLineItems(ctx, tx, "job_items", "job_id", j.JobID, j.Items); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) importChallans(ctx context.Context, tx pgx.Tx, challans []domain.DeliveryChallan) error {
	query := `
		INSERT INTO delivery_challans (` + challanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, ch := range challans {
		batch.Queue(query, ch.ChallanID, ch.ChallanNumber, ch.InvoiceID, ch.CustomerID, ch.DeliveryDate, ch.VehicleNumber, ch.Notes, ch.CreatedAt, ch.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import challans", err)
	}

	for _, ch := range challans {
		if err := insertLineItems(ctx, tx, "challan_items", "challan_id", ch.ChallanID, ch.Items); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) importCreditNotes(ctx context.Context, tx pgx.Tx, notes []domain.CreditNote) error {
	query := `
		INSERT INTO credit_notes (` + creditNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, cn := range notes {
		batch.Queue(query, cn.CreditNoteID, cn.CreditNoteNumber, cn.OriginalInvoiceID, cn.CustomerID, cn.IssueDate, cn.Status, cn.Reason, cn.TaxAmount, cn.JournalID, cn.CreatedAt, cn.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import credit notes", err)
	}

	for _, cn := range notes {
		if err := insertLineItems(ctx, tx, "credit_note_items", "credit_note_id", cn.CreditNoteID, cn.Items); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgxSnapshotRepository) importExpenses(ctx context.Context, tx pgx.Tx, expenses []domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, e := range expenses {
		batch.Queue(query, e.ExpenseID, e.Date, e.Description, e.Amount, e.DebitAccountID, e.CreditAccountID, e.AttachmentURL, e.JournalID, e.CreatedAt, e.LastUpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to import expenses", err)
	}
	return nil
}
