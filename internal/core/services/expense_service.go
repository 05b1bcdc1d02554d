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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type expenseService struct {
	BaseService
	txManager   portrepo.TransactionManager
	expenseRepo portrepo.ExpenseRepositoryFacade
	journalRepo portrepo.JournalRepositoryFacade
	accountRepo portrepo.AccountRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(
	txManager portrepo.TransactionManager,
	expenseRepo portrepo.ExpenseRepositoryFacade,
	journalRepo portrepo.JournalRepositoryFacade,
	accountRepo portrepo.AccountRepositoryFacade,
) portsvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: NewBaseService(),
		txManager:   txManager,
		expenseRepo: expenseRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

func (s *expenseService) validateExpense(ctx context.Context, amount decimal.Decimal, debitAccountID, creditAccountID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: expense amount must be positive", ErrUnbalancedEntry)
	}
	if debitAccountID == creditAccountID {
		return fmt.Errorf("%w: debit and credit accounts must differ", ErrJournalMinAccounts)
	}
	_, err := verifyAccountsUsable(ctx, s.accountRepo, []string{debitAccountID, creditAccountID})
	return err
}

// postExpenseEntryInTx posts the two-line journal entry representing an expense.
func (s *expenseService) postExpenseEntryInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense, now time.Time) (domain.Journal, error) {
	memo := fmt.Sprintf("Expense: %s", expense.Description)
	journal, transactions, balanceChanges, err := buildJournal(expense.Date, memo, []entryLine{
		{accountID: expense.DebitAccountID, txnType: domain.Debit, amount: expense.Amount},
		{accountID: expense.CreditAccountID, txnType: domain.Credit, amount: expense.Amount},
	}, now)
	if err != nil {
		return domain.Journal{}, err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		return domain.Journal{}, fmt.Errorf("failed to post expense journal: %w", err)
	}
	return journal, nil
}

// reverseExpenseEntryInTx posts the mirror of an expense's current journal
// entry and marks the original reversed.
func (s *expenseService) reverseExpenseEntryInTx(ctx context.Context, tx pgx.Tx, journalID string, now time.Time) error {
	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return err
	}
	if len(original.Transactions) == 0 {
		transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
		if err != nil {
			return fmt.Errorf("failed to load expense journal lines: %w", err)
		}
		original.Transactions = transactions
	}

	reversal, transactions, balanceChanges, err := reversalOf(*original, now, now)
	if err != nil {
		return err
	}
	if err := s.journalRepo.SaveJournalInTx(ctx, tx, reversal, transactions, balanceChanges); err != nil {
		return fmt.Errorf("failed to post reversing journal: %w", err)
	}
	return s.journalRepo.UpdateJournalStatusAndLinksInTx(ctx, tx, journalID, domain.Reversed, &reversal.JournalID, now)
}

// AddExpense records an expense and posts its journal entry (debit the
// expense-side account, credit the paying account) in one transaction.
func (s *expenseService) AddExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if err := s.validateExpense(ctx, req.Amount, req.DebitAccountID, req.CreditAccountID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		Date:            req.Date,
		Description:     req.Description,
		Amount:          req.Amount,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		AttachmentURL:   req.AttachmentURL,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	journal, err := s.postExpenseEntryInTx(ctx, tx, expense, now)
	if err != nil {
		return nil, err
	}
	expense.JournalID = journal.JournalID

	if err := s.expenseRepo.SaveExpenseInTx(ctx, tx, expense); err != nil {
		s.LogError(ctx, "failed to save expense", "error", err)
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	s.LogInfo(ctx, "expense recorded", "expenseID", expense.ExpenseID, "amount", expense.Amount.String())
	return &expense, nil
}

// UpdateExpense never mutates the original journal entry. It reverses the
// entry currently representing the expense, posts a fresh entry from the
// updated fields, and repoints the expense at it, all in one transaction.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.DebitAccountID != nil {
		expense.DebitAccountID = *req.DebitAccountID
	}
	if req.CreditAccountID != nil {
		expense.CreditAccountID = *req.CreditAccountID
	}
	if req.AttachmentURL != nil {
		expense.AttachmentURL = *req.AttachmentURL
	}

	if err := s.validateExpense(ctx, expense.Amount, expense.DebitAccountID, expense.CreditAccountID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	expense.LastUpdatedAt = now

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	oldJournalID := expense.JournalID
	if err := s.reverseExpenseEntryInTx(ctx, tx, oldJournalID, now); err != nil {
		s.LogError(ctx, "failed to reverse expense journal", "error", err, "expenseID", expenseID)
		return nil, err
	}

	journal, err := s.postExpenseEntryInTx(ctx, tx, *expense, now)
	if err != nil {
		return nil, err
	}
	expense.JournalID = journal.JournalID

	if err := s.expenseRepo.UpdateExpenseInTx(ctx, tx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	s.LogInfo(ctx, "expense updated", "expenseID", expenseID,
		"reversedJournalID", oldJournalID, "journalID", expense.JournalID)
	return expense, nil
}

// DeleteExpense reverses the expense's journal entry and removes the expense
// record. The original entry and its reversal both stay in the log.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.txManager.Rollback(ctx, tx) }()

	if err := s.reverseExpenseEntryInTx(ctx, tx, expense.JournalID, now); err != nil {
		s.LogError(ctx, "failed to reverse expense journal", "error", err, "expenseID", expenseID)
		return err
	}
	if err := s.expenseRepo.DeleteExpenseInTx(ctx, tx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit expense deletion: %w", err)
	}

	s.LogInfo(ctx, "expense deleted", "expenseID", expenseID)
	return nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, expenseID)
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.expenseRepo.ListExpenses(ctx)
}
