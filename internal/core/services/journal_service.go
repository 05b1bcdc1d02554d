package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
)

const defaultPageLimit = 20

type journalService struct {
	BaseService
	txManager   portrepo.TransactionManager
	journalRepo portrepo.JournalRepositoryFacade
	accountRepo portrepo.AccountRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(txManager portrepo.TransactionManager, journalRepo portrepo.JournalRepositoryFacade, accountRepo portrepo.AccountRepositoryFacade) portsvc.JournalSvcFacade {
	return &journalService{
		BaseService: NewBaseService(),
		txManager:   txManager,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// CreateJournal posts a manual journal entry. The entry, its lines and the
// resulting account balance updates are persisted in one transaction.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	lines := make([]entryLine, 0, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, entryLine{
			accountID: l.AccountID,
			txnType:   l.TransactionType,
			amount:    l.Amount,
			notes:     l.Notes,
		})
		accountIDs = append(accountIDs, l.AccountID)
	}

	if _, err := verifyAccountsUsable(ctx, s.accountRepo, accountIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journal, transactions, balanceChanges, err := buildJournal(req.Date, req.Memo, lines, now)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to save journal", "error", err)
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.LogInfo(ctx, "journal posted", "journalID", journal.JournalID, "amount", journal.Amount.String())
	return &journal, nil
}

// ReverseJournal posts the mirror entry of a previously posted journal and
// marks the original reversed. The original entry is never mutated beyond
// its status and reversal link; both entries remain in the log.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	original, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, journalID)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	reversal, transactions, balanceChanges, err := reversalOf(*original, now, now)
	if err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, reversal, transactions, balanceChanges); err != nil {
		s.LogError(ctx, "failed to save reversing journal", "error", err, "originalJournalID", journalID)
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}
	if err := s.journalRepo.UpdateJournalStatusAndLinksInTx(ctx, tx, journalID, domain.Reversed, &reversal.JournalID, now); err != nil {
		return nil, fmt.Errorf("failed to mark journal reversed: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit reversal: %w", err)
	}

	s.LogInfo(ctx, "journal reversed", "originalJournalID", journalID, "reversingJournalID", reversal.JournalID)
	return &reversal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if len(journal.Transactions) == 0 {
		transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
		if err != nil {
			return nil, fmt.Errorf("failed to load journal transactions: %w", err)
		}
		journal.Transactions = transactions
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	if params.IncludeTransactions && len(journals) > 0 {
		journalIDs := make([]string, len(journals))
		for i := range journals {
			journalIDs[i] = journals[i].JournalID
		}
		byJournal, err := s.journalRepo.FindTransactionsByJournalIDs(ctx, journalIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load journal transactions: %w", err)
		}
		for i := range journals {
			journals[i].Transactions = byJournal[journals[i].JournalID]
		}
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		responses[i] = dto.ToJournalResponse(&journals[i])
	}
	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}

func (s *journalService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	transactions, nextToken, err := s.journalRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
