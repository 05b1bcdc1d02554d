package pgsql

import (
	portsrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the full set of PostgreSQL repositories
// sharing one connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	journalRepo := newPgxJournalRepository(pool, accountRepo)
	invoiceRepo := newPgxInvoiceRepository(pool)

	return &portsrepo.RepositoryProvider{
		TxManager:         &BaseRepository{Pool: pool},
		AccountRepo:       accountRepo,
		JournalRepo:       journalRepo,
		InvoiceRepo:       invoiceRepo,
		PurchaseOrderRepo: newPgxPurchaseOrderRepository(pool),
		QuoteRepo:         newPgxQuoteRepository(pool, invoiceRepo),
		ChallanRepo:       newPgxChallanRepository(pool),
		CreditNoteRepo:    newPgxCreditNoteRepository(pool),
		ExpenseRepo:       newPgxExpenseRepository(pool),
		ReportingRepo:     newPgxReportingRepository(pool),
		SnapshotRepo:      newPgxSnapshotRepository(pool),
	}
}
