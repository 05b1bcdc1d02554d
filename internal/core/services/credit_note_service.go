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

type creditNoteService struct {
	BaseService
	txManager      portrepo.TransactionManager
	creditNoteRepo portrepo.CreditNoteRepositoryFacade
	invoiceRepo    portrepo.InvoiceRepositoryFacade
	journalRepo    portrepo.JournalRepositoryFacade
}

// NewCreditNoteService creates a new credit note service.
func NewCreditNoteService(
	txManager portrepo.TransactionManager,
	creditNoteRepo portrepo.CreditNoteRepositoryFacade,
	invoiceRepo portrepo.InvoiceRepositoryFacade,
	journalRepo portrepo.JournalRepositoryFacade,
) portsvc.CreditNoteSvcFacade {
	return &creditNoteService{
		BaseService:    NewBaseService(),
		txManager:      txManager,
		creditNoteRepo: creditNoteRepo,
		invoiceRepo:    invoiceRepo,
		journalRepo:    journalRepo,
	}
}

// CreateCreditNote creates a draft note against an existing invoice. Drafts
// carry no ledger effect.
func (s *creditNoteService) CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest) (*domain.CreditNote, error) {
	items := newLineItems(req.Items)
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, req.OriginalInvoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := domain.CreditNote{
		CreditNoteID:      uuid.NewString(),
		CreditNoteNumber:  req.CreditNoteNumber,
		OriginalInvoiceID: req.OriginalInvoiceID,
		CustomerID:        invoice.CustomerID,
		IssueDate:         req.IssueDate,
		Items:             items,
		Status:            domain.CreditNoteDraft,
		Reason:            req.Reason,
		TaxAmount:         req.TaxAmount,
		AuditFields:       domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.creditNoteRepo.SaveCreditNote(ctx, note); err != nil {
		s.LogError(ctx, "failed to save credit note", "error", err)
		return nil, fmt.Errorf("failed to save credit note: %w", err)
	}
	return &note, nil
}

func (s *creditNoteService) UpdateCreditNote(ctx context.Context, creditNoteID string, req dto.UpdateCreditNoteRequest) (*domain.CreditNote, error) {
	note, err := s.creditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
	if err != nil {
		return nil, err
	}
	if note.Status == domain.CreditNoteFinalized {
		return nil, fmt.Errorf("%w: %s", ErrFinalized, creditNoteID)
	}

	if req.CreditNoteNumber != nil {
		note.CreditNoteNumber = *req.CreditNoteNumber
	}
	if req.IssueDate != nil {
		note.IssueDate = *req.IssueDate
	}
	if req.Items != nil {
		items := newLineItems(req.Items)
		if err := validateLineItems(items); err != nil {
			return nil, err
		}
		note.Items = items
	}
	if req.Reason != nil {
		note.Reason = *req.Reason
	}
	if req.TaxAmount != nil {
		note.TaxAmount = *req.TaxAmount
	}
	note.LastUpdatedAt = time.Now().UTC()

	if err := s.creditNoteRepo.UpdateCreditNote(ctx, *note); err != nil {
		s.LogError(ctx, "failed to update credit note", "error", err, "creditNoteID", creditNoteID)
		return nil, fmt.Errorf("failed to update credit note: %w", err)
	}
	return note, nil
}

func (s *creditNoteService) DeleteCreditNote(ctx context.Context, creditNoteID string) error {
	note, err := s.creditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
	if err != nil {
		return err
	}
	if note.Status == domain.CreditNoteFinalized {
		return fmt.Errorf("%w: %s", ErrFinalized, creditNoteID)
	}

	if err := s.creditNoteRepo.DeleteCreditNote(ctx, creditNoteID); err != nil {
		s.LogError(ctx, "failed to delete credit note", "error", err, "creditNoteID", creditNoteID)
		return fmt.Errorf("failed to delete credit note: %w", err)
	}
	return nil
}

func (s *creditNoteService) GetCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	return s.creditNoteRepo.FindCreditNoteByID(ctx, creditNoteID)
}

func (s *creditNoteService) ListCreditNotes(ctx context.Context, customerID string) ([]domain.CreditNote, error) {
	return s.creditNoteRepo.ListCreditNotes(ctx, customerID)
}

// FinalizeCreditNote posts the note's journal entry (debit Sales Revenue,
// credit Accounts Receivable for the total) and freezes the note, in one
// transaction. Finalizing twice is rejected.
func (s *creditNoteService) FinalizeCreditNote(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	note, err := s.creditNoteRepo.FindCreditNoteByIDForUpdate(ctx, tx, creditNoteID)
	if err != nil {
		return nil, err
	}
	if note.Status == domain.CreditNoteFinalized {
		return nil, fmt.Errorf("%w: %s", ErrFinalized, creditNoteID)
	}

	total := note.Total()
	memo := fmt.Sprintf("Credit note %s against invoice %s", note.CreditNoteNumber, note.OriginalInvoiceID)
	journal, transactions, balanceChanges, err := buildJournal(note.IssueDate, memo, []entryLine{
		{accountID: domain.SystemAccountSalesRevenue, txnType: domain.Debit, amount: total},
		{accountID: domain.SystemAccountReceivable, txnType: domain.Credit, amount: total},
	}, now)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to post credit note journal", "error", err, "creditNoteID", creditNoteID)
		return nil, fmt.Errorf("failed to post credit note journal: %w", err)
	}
	if err := s.creditNoteRepo.FinalizeCreditNoteInTx(ctx, tx, creditNoteID, journal.JournalID, now); err != nil {
		return nil, fmt.Errorf("failed to finalize credit note: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit finalization: %w", err)
	}

	note.Status = domain.CreditNoteFinalized
	note.JournalID = &journal.JournalID
	note.LastUpdatedAt = now
	s.LogInfo(ctx, "credit note finalized", "creditNoteID", creditNoteID, "journalID", journal.JournalID)
	return note, nil
}
