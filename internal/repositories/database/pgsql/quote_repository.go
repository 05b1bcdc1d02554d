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

type PgxQuoteRepository struct {
	BaseRepository
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// newPgxQuoteRepository creates a new repository for quote and job data. It
// reuses the invoice repository's insert when a quote converts to an invoice.
func newPgxQuoteRepository(pool *pgxpool.Pool, invoiceRepo portsrepo.InvoiceRepositoryFacade) portsrepo.QuoteRepositoryFacade {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
		invoiceRepo:    invoiceRepo,
	}
}

var _ portsrepo.QuoteRepositoryFacade = (*PgxQuoteRepository)(nil)

const quoteColumns = `quote_id, quote_number, customer_id, issue_date, expiry_date, status, discount, tax_amount, converted_to_job_id, converted_to_invoice_id, created_at, last_updated_at`

func scanQuote(row pgx.Row) (domain.Quote, error) {
	var q domain.Quote
	err := row.Scan(
		&q.QuoteID,
		&q.QuoteNumber,
		&q.CustomerID,
		&q.IssueDate,
		&q.ExpiryDate,
		&q.Status,
		&q.Discount,
		&q.TaxAmount,
		&q.ConvertedToJobID,
		&q.ConvertedToInvoiceID,
		&q.CreatedAt,
		&q.LastUpdatedAt,
	)
	return q, err
}

func (r *PgxQuoteRepository) attachQuoteItems(ctx context.Context, q dbQuerier, quotes []domain.Quote) error {
	ids := make([]string, len(quotes))
	for i := range quotes {
		ids[i] = quotes[i].QuoteID
	}
	items, err := loadLineItems(ctx, q, "quote_items", "quote_id", ids)
	if err != nil {
		return err
	}
	for i := range quotes {
		quotes[i].Items = items[quotes[i].QuoteID]
	}
	return nil
}

// SaveQuote persists a new quote with its items.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		quote.QuoteID,
		quote.QuoteNumber,
		quote.CustomerID,
		quote.IssueDate,
		quote.ExpiryDate,
		quote.Status,
		quote.Discount,
		quote.TaxAmount,
		quote.ConvertedToJobID,
		quote.ConvertedToInvoiceID,
		quote.CreatedAt,
		quote.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert quote "+quote.QuoteID, err)
	}
	if err := insertLineItems(ctx, tx, "quote_items", "quote_id", quote.QuoteID, quote.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateQuote rewrites the quote header and items. Conversion links are
// managed only by SetConversionLinksInTx.
func (r *PgxQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE quotes
		SET quote_number = $2, issue_date = $3, expiry_date = $4, status = $5,
		    discount = $6, tax_amount = $7, last_updated_at = $8
		WHERE quote_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		quote.QuoteID,
		quote.QuoteNumber,
		quote.IssueDate,
		quote.ExpiryDate,
		quote.Status,
		quote.Discount,
		quote.TaxAmount,
		quote.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update quote "+quote.QuoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("quote " + quote.QuoteID + " not found")
	}

	if err := deleteLineItems(ctx, tx, "quote_items", "quote_id", quote.QuoteID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, "quote_items", "quote_id", quote.QuoteID, quote.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteQuote removes a quote and its items.
func (r *PgxQuoteRepository) DeleteQuote(ctx context.Context, quoteID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := deleteLineItems(ctx, tx, "quote_items", "quote_id", quoteID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM quotes WHERE quote_id = $1;`, quoteID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete quote "+quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("quote " + quoteID + " not found")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxQuoteRepository) findQuote(ctx context.Context, q dbQuerier, quoteID string, forUpdate bool) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE quote_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	quote, err := scanQuote(q.QueryRow(ctx, query+`;`, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("quote " + quoteID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find quote by ID "+quoteID, err)
	}

	quotes := []domain.Quote{quote}
	if err := r.attachQuoteItems(ctx, q, quotes); err != nil {
		return nil, err
	}
	return &quotes[0], nil
}

func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	return r.findQuote(ctx, r.Pool, quoteID, false)
}

// FindQuoteByIDForUpdate loads and row-locks one quote inside a transaction.
func (r *PgxQuoteRepository) FindQuoteByIDForUpdate(ctx context.Context, tx pgx.Tx, quoteID string) (*domain.Quote, error) {
	return r.findQuote(ctx, tx, quoteID, true)
}

func (r *PgxQuoteRepository) listQuotes(ctx context.Context, query string, args ...any) ([]domain.Quote, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query quotes", err)
	}
	defer rows.Close()

	quotes := []domain.Quote{}
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan quote row", err)
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating quote rows", err)
	}

	if err := r.attachQuoteItems(ctx, r.Pool, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// ListQuotes retrieves quotes newest first, optionally filtered by customer.
func (r *PgxQuoteRepository) ListQuotes(ctx context.Context, customerID string) ([]domain.Quote, error) {
	if customerID != "" {
		query := `SELECT ` + quoteColumns + ` FROM quotes WHERE customer_id = $1 ORDER BY issue_date DESC, created_at DESC;`
		return r.listQuotes(ctx, query, customerID)
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY issue_date DESC, created_at DESC;`
	return r.listQuotes(ctx, query)
}

// FindAllQuotes retrieves every quote, oldest first.
func (r *PgxQuoteRepository) FindAllQuotes(ctx context.Context) ([]domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes ORDER BY created_at, quote_id;`
	return r.listQuotes(ctx, query)
}

// SetConversionLinksInTx records the conversion link ids. A nil argument
// leaves the corresponding link untouched.
func (r *PgxQuoteRepository) SetConversionLinksInTx(ctx context.Context, tx pgx.Tx, quoteID string, jobID, invoiceID *string) error {
	query := `
		UPDATE quotes
		SET converted_to_job_id = COALESCE($2, converted_to_job_id),
		    converted_to_invoice_id = COALESCE($3, converted_to_invoice_id)
		WHERE quote_id = $1;
	`
	tag, err := tx.Exec(ctx, query, quoteID, jobID, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set conversion links on quote "+quoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("quote " + quoteID + " not found")
	}
	return nil
}

const jobColumns = `job_id, quote_id, customer_id, title, status, created_at, last_updated_at`

func scanJob(row pgx.Row) (domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.JobID,
		&j.QuoteID,
		&j.CustomerID,
		&j.Title,
		&j.Status,
		&j.CreatedAt,
		&j.LastUpdatedAt,
	)
	return j, err
}

func (r *PgxQuoteRepository) attachJobItems(ctx context.Context, q dbQuerier, jobs []domain.Job) error {
	ids := make([]string, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].JobID
	}
	items, err := loadLineItems(ctx, q, "job_items", "job_id", ids)
	if err != nil {
		return err
	}
	for i := range jobs {
		jobs[i].Items = items[jobs[i].JobID]
	}
	return nil
}

// SaveJobInTx persists a job created by quote conversion.
func (r *PgxQuoteRepository) SaveJobInTx(ctx context.Context, tx pgx.Tx, job domain.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		job.JobID,
		job.QuoteID,
		job.CustomerID,
		job.Title,
		job.Status,
		job.CreatedAt,
		job.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert job "+job.JobID, err)
	}
	return insertLineItems(ctx, tx, "job_items", "job_id", job.JobID, job.Items)
}

// SaveInvoiceInTx persists an invoice created by quote conversion.
func (r *PgxQuoteRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	repo, ok := r.invoiceRepo.(*PgxInvoiceRepository)
	if !ok {
		return apperrors.NewAppError(500, "invoice repository does not support conversion inserts", nil)
	}
	return repo.insertInvoice(ctx, tx, invoice)
}

// UpdateJob updates a job's title and status.
func (r *PgxQuoteRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, status = $3, last_updated_at = $4
		WHERE job_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, job.JobID, job.Title, job.Status, job.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update job "+job.JobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("job " + job.JobID + " not found")
	}
	return nil
}

func (r *PgxQuoteRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1;`
	job, err := scanJob(r.Pool.QueryRow(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("job " + jobID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find job by ID "+jobID, err)
	}

	jobs := []domain.Job{job}
	if err := r.attachJobItems(ctx, r.Pool, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *PgxQuoteRepository) listJobs(ctx context.Context, query string) ([]domain.Job, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query jobs", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan job row", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating job rows", err)
	}

	if err := r.attachJobItems(ctx, r.Pool, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *PgxQuoteRepository) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, job_id;`)
}

// FindAllJobs retrieves every job, oldest first.
func (r *PgxQuoteRepository) FindAllJobs(ctx context.Context) ([]domain.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at, job_id;`)
}
