package repositories

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// QuoteReader defines read operations for quote and job data.
type QuoteReader interface {
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)
	ListQuotes(ctx context.Context, customerID string) ([]domain.Quote, error)
	FindAllQuotes(ctx context.Context) ([]domain.Quote, error)
	FindJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.Job, error)
	FindAllJobs(ctx context.Context) ([]domain.Job, error)
}

// QuoteWriter defines write operations for quote and job data.
type QuoteWriter interface {
	SaveQuote(ctx context.Context, quote domain.Quote) error
	UpdateQuote(ctx context.Context, quote domain.Quote) error
	DeleteQuote(ctx context.Context, quoteID string) error
	UpdateJob(ctx context.Context, job domain.Job) error
}

// QuoteTransactionSupport defines operations used inside conversion transactions.
type QuoteTransactionSupport interface {
	// FindQuoteByIDForUpdate loads and row-locks one quote, so concurrent
	// conversions observe the link id.
	FindQuoteByIDForUpdate(ctx context.Context, tx pgx.Tx, quoteID string) (*domain.Quote, error)

	// SetConversionLinksInTx records the job/invoice conversion link ids.
	SetConversionLinksInTx(ctx context.Context, tx pgx.Tx, quoteID string, jobID, invoiceID *string) error

	// SaveJobInTx persists a job created by quote conversion.
	SaveJobInTx(ctx context.Context, tx pgx.Tx, job domain.Job) error

	// SaveInvoiceInTx persists an invoice created by quote conversion.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error
}

// QuoteRepositoryFacade combines all quote-related repository interfaces.
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
	QuoteTransactionSupport
}
