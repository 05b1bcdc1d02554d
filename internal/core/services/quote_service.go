package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/google/uuid"
)

type quoteService struct {
	BaseService
	txManager portrepo.TransactionManager
	quoteRepo portrepo.QuoteRepositoryFacade
}

// NewQuoteService creates a new quote service.
func NewQuoteService(txManager portrepo.TransactionManager, quoteRepo portrepo.QuoteRepositoryFacade) portsvc.QuoteSvcFacade {
	return &quoteService{
		BaseService: NewBaseService(),
		txManager:   txManager,
		quoteRepo:   quoteRepo,
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error) {
	items := newLineItems(req.Items)
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote := domain.Quote{
		QuoteID:     uuid.NewString(),
		QuoteNumber: req.QuoteNumber,
		CustomerID:  req.CustomerID,
		IssueDate:   req.IssueDate,
		ExpiryDate:  req.ExpiryDate,
		Items:       items,
		Status:      domain.QuoteDraft,
		Discount:    req.Discount,
		TaxAmount:   req.TaxAmount,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		s.LogError(ctx, "failed to save quote", "error", err)
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}
	return &quote, nil
}

func (s *quoteService) UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if req.QuoteNumber != nil {
		quote.QuoteNumber = *req.QuoteNumber
	}
	if req.IssueDate != nil {
		quote.IssueDate = *req.IssueDate
	}
	if req.ExpiryDate != nil {
		quote.ExpiryDate = *req.ExpiryDate
	}
	if req.Items != nil {
		items := newLineItems(req.Items)
		if err := validateLineItems(items); err != nil {
			return nil, err
		}
		quote.Items = items
	}
	if req.Discount != nil {
		quote.Discount = *req.Discount
	}
	if req.TaxAmount != nil {
		quote.TaxAmount = *req.TaxAmount
	}
	if req.Status != nil {
		quote.Status = *req.Status
	}
	quote.LastUpdatedAt = time.Now().UTC()

	if err := s.quoteRepo.UpdateQuote(ctx, *quote); err != nil {
		s.LogError(ctx, "failed to update quote", "error", err, "quoteID", quoteID)
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}
	return quote, nil
}

func (s *quoteService) DeleteQuote(ctx context.Context, quoteID string) error {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if quote.ConvertedToJobID != nil || quote.ConvertedToInvoiceID != nil {
		return fmt.Errorf("%w: quote %s", ErrAlreadyConverted, quoteID)
	}

	if err := s.quoteRepo.DeleteQuote(ctx, quoteID); err != nil {
		s.LogError(ctx, "failed to delete quote", "error", err, "quoteID", quoteID)
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	return nil
}

func (s *quoteService) GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	return s.quoteRepo.FindQuoteByID(ctx, quoteID)
}

func (s *quoteService) ListQuotes(ctx context.Context, customerID string) ([]domain.Quote, error) {
	return s.quoteRepo.ListQuotes(ctx, customerID)
}

// ConvertToJob creates a job from the quote's items and records the link id.
// The row lock makes a concurrent second conversion observe the link and
// fail. No ledger effect.
func (s *quoteService) ConvertToJob(ctx context.Context, quoteID string, req dto.ConvertQuoteToJobRequest) (*domain.Job, error) {
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	quote, err := s.quoteRepo.FindQuoteByIDForUpdate(ctx, tx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.ConvertedToJobID != nil {
		return nil, fmt.Errorf("%w: quote %s already has job %s", ErrAlreadyConverted, quoteID, *quote.ConvertedToJobID)
	}

	items := make([]domain.LineItem, len(quote.Items))
	copy(items, quote.Items)
	job := domain.Job{
		JobID:       uuid.NewString(),
		QuoteID:     quoteID,
		CustomerID:  quote.CustomerID,
		Title:       req.Title,
		Items:       items,
		Status:      domain.JobPending,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.quoteRepo.SaveJobInTx(ctx, tx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	if err := s.quoteRepo.SetConversionLinksInTx(ctx, tx, quoteID, &job.JobID, nil); err != nil {
		return nil, fmt.Errorf("failed to link job: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion: %w", err)
	}

	s.LogInfo(ctx, "quote converted to job", "quoteID", quoteID, "jobID", job.JobID)
	return &job, nil
}

// ConvertToInvoice creates a draft invoice carrying the quote's items,
// discount and tax, and records the link id. The invoice posts nothing to
// the ledger until payments arrive.
func (s *quoteService) ConvertToInvoice(ctx context.Context, quoteID string, req dto.ConvertQuoteToInvoiceRequest) (*domain.Invoice, error) {
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	quote, err := s.quoteRepo.FindQuoteByIDForUpdate(ctx, tx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.ConvertedToInvoiceID != nil {
		return nil, fmt.Errorf("%w: quote %s already has invoice %s", ErrAlreadyConverted, quoteID, *quote.ConvertedToInvoiceID)
	}

	items := make([]domain.LineItem, len(quote.Items))
	copy(items, quote.Items)
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    quote.CustomerID,
		IssueDate:     now,
		DueDate:       req.DueDate,
		Items:         items,
		Status:        domain.StatusDraft,
		Payments:      []domain.Payment{},
		Discount:      quote.Discount,
		TaxAmount:     quote.TaxAmount,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.quoteRepo.SaveInvoiceInTx(ctx, tx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	if err := s.quoteRepo.SetConversionLinksInTx(ctx, tx, quoteID, nil, &invoice.InvoiceID); err != nil {
		return nil, fmt.Errorf("failed to link invoice: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit conversion: %w", err)
	}

	s.LogInfo(ctx, "quote converted to invoice", "quoteID", quoteID, "invoiceID", invoice.InvoiceID)
	return &invoice, nil
}

func (s *quoteService) GetJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.quoteRepo.FindJobByID(ctx, jobID)
}

func (s *quoteService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.quoteRepo.ListJobs(ctx)
}
