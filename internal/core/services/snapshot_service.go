package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type snapshotService struct {
	BaseService
	repos *portrepo.RepositoryProvider
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(repos *portrepo.RepositoryProvider) portsvc.SnapshotService {
	return &snapshotService{
		BaseService: NewBaseService(),
		repos:       repos,
	}
}

// Export assembles the full ledger state: the chart of accounts, the complete
// journal log with its lines, and every document collection.
func (s *snapshotService) Export(ctx context.Context) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{ExportedAt: time.Now().UTC()}
	var err error

	if snapshot.Accounts, err = s.repos.AccountRepo.ListAccounts(ctx); err != nil {
		return nil, fmt.Errorf("failed to export accounts: %w", err)
	}
	if snapshot.Journals, err = s.repos.JournalRepo.FindAllJournals(ctx); err != nil {
		return nil, fmt.Errorf("failed to export journals: %w", err)
	}
	if snapshot.Invoices, err = s.repos.InvoiceRepo.FindAllInvoices(ctx); err != nil {
		return nil, fmt.Errorf("failed to export invoices: %w", err)
	}
	if snapshot.PurchaseOrders, err = s.repos.PurchaseOrderRepo.FindAllPurchaseOrders(ctx); err != nil {
		return nil, fmt.Errorf("failed to export purchase orders: %w", err)
	}
	if snapshot.Quotes, err = s.repos.QuoteRepo.FindAllQuotes(ctx); err != nil {
		return nil, fmt.Errorf("failed to export quotes: %w", err)
	}
	if snapshot.Jobs, err = s.repos.QuoteRepo.FindAllJobs(ctx); err != nil {
		return nil, fmt.Errorf("failed to export jobs: %w", err)
	}
	if snapshot.Challans, err = s.repos.ChallanRepo.FindAllChallans(ctx); err != nil {
		return nil, fmt.Errorf("failed to export challans: %w", err)
	}
	if snapshot.CreditNotes, err = s.repos.CreditNoteRepo.FindAllCreditNotes(ctx); err != nil {
		return nil, fmt.Errorf("failed to export credit notes: %w", err)
	}
	if snapshot.Expenses, err = s.repos.ExpenseRepo.FindAllExpenses(ctx); err != nil {
		return nil, fmt.Errorf("failed to export expenses: %w", err)
	}

	s.LogInfo(ctx, "snapshot exported",
		"accounts", len(snapshot.Accounts), "journals", len(snapshot.Journals))
	return snapshot, nil
}

// Import validates the snapshot and then replaces the persisted state with it
// in one transaction. A snapshot that fails validation changes nothing.
func (s *snapshotService) Import(ctx context.Context, snapshot domain.Snapshot) error {
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}
	if err := s.repos.SnapshotRepo.ImportSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, "failed to import snapshot", "error", err)
		return fmt.Errorf("failed to import snapshot: %w", err)
	}

	s.LogInfo(ctx, "snapshot imported",
		"accounts", len(snapshot.Accounts), "journals", len(snapshot.Journals))
	return nil
}

// validateSnapshot checks the integrity of a snapshot before any write:
// every posted journal must balance, every reserved system account must be
// present with its required type, and every account balance must equal the
// net of its journal lines.
func validateSnapshot(snapshot domain.Snapshot) error {
	accountsByID := make(map[string]domain.Account, len(snapshot.Accounts))
	for _, account := range snapshot.Accounts {
		if _, ok := accountsByID[account.AccountID]; ok {
			return fmt.Errorf("%w: duplicate account %s", ErrUnbalancedEntry, account.AccountID)
		}
		accountsByID[account.AccountID] = account
	}

	for _, spec := range domain.SystemAccounts() {
		account, ok := accountsByID[spec.AccountID]
		if !ok {
			return fmt.Errorf("%w: system account %s missing", ErrAccountNotFound, spec.AccountID)
		}
		if account.AccountType != spec.AccountType {
			return fmt.Errorf("%w: system account %s must be %s", ErrSystemAccountProtected, spec.AccountID, spec.AccountType)
		}
	}

	netByAccount := make(map[string]decimal.Decimal)
	for _, journal := range snapshot.Journals {
		if err := accounting.ValidateJournalBalance(journal.Transactions); err != nil {
			return fmt.Errorf("%w: journal %s: %v", ErrUnbalancedEntry, journal.JournalID, err)
		}
		for _, txn := range journal.Transactions {
			if _, ok := accountsByID[txn.AccountID]; !ok {
				return fmt.Errorf("%w: journal %s references account %s", ErrAccountNotFound, journal.JournalID, txn.AccountID)
			}
			netByAccount[txn.AccountID] = netByAccount[txn.AccountID].Add(accounting.SignedDelta(txn.TransactionType, txn.Amount))
		}
	}

	for _, account := range snapshot.Accounts {
		if !account.Balance.Equal(netByAccount[account.AccountID]) {
			return fmt.Errorf("%w: account %s balance %s does not match journal net %s",
				ErrUnbalancedEntry, account.AccountID, account.Balance.String(), netByAccount[account.AccountID].String())
		}
	}
	return nil
}
