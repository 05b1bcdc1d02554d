package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/craftbooks/craft_books_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// entryLine is one debit or credit side of a journal entry being assembled.
// Payment, expense and credit-note services build entries from these instead
// of constructing domain.Transaction values directly.
type entryLine struct {
	accountID string
	txnType   domain.TransactionType
	amount    decimal.Decimal
	notes     string
}

// buildJournal assembles a posted journal entry from validated lines. It
// enforces the double-entry invariant and returns the journal header, its
// transaction lines and the per-account balance deltas the repository must
// apply atomically with the insert.
func buildJournal(date time.Time, memo string, lines []entryLine, now time.Time) (domain.Journal, []domain.Transaction, map[string]decimal.Decimal, error) {
	if strings.TrimSpace(memo) == "" {
		return domain.Journal{}, nil, nil, ErrMemoMissing
	}
	if len(lines) < 2 {
		return domain.Journal{}, nil, nil, ErrJournalMinEntries
	}

	journalID := uuid.NewString()
	transactions := make([]domain.Transaction, 0, len(lines))
	balanceChanges := make(map[string]decimal.Decimal)
	accountSet := make(map[string]struct{})
	debitTotal := decimal.Zero

	for _, line := range lines {
		transactions = append(transactions, domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       line.accountID,
			Amount:          line.amount,
			TransactionType: line.txnType,
			Notes:           line.notes,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		})
		accountSet[line.accountID] = struct{}{}
		delta := accounting.SignedDelta(line.txnType, line.amount)
		balanceChanges[line.accountID] = balanceChanges[line.accountID].Add(delta)
		if line.txnType == domain.Debit {
			debitTotal = debitTotal.Add(line.amount)
		}
	}

	if len(accountSet) < 2 {
		return domain.Journal{}, nil, nil, ErrJournalMinAccounts
	}
	if err := accounting.ValidateJournalBalance(transactions); err != nil {
		return domain.Journal{}, nil, nil, fmt.Errorf("%w: %v", ErrUnbalancedEntry, err)
	}

	journal := domain.Journal{
		JournalID:    journalID,
		JournalDate:  date,
		Memo:         memo,
		Status:       domain.Posted,
		Amount:       debitTotal,
		Transactions: transactions,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	return journal, transactions, balanceChanges, nil
}

// reversalOf builds the mirror entry of a posted journal: same accounts and
// amounts with debit and credit swapped.
func reversalOf(original domain.Journal, date, now time.Time) (domain.Journal, []domain.Transaction, map[string]decimal.Decimal, error) {
	lines := make([]entryLine, 0, len(original.Transactions))
	for _, txn := range original.Transactions {
		flipped := domain.Credit
		if txn.TransactionType == domain.Credit {
			flipped = domain.Debit
		}
		lines = append(lines, entryLine{
			accountID: txn.AccountID,
			txnType:   flipped,
			amount:    txn.Amount,
			notes:     txn.Notes,
		})
	}

	journal, transactions, balanceChanges, err := buildJournal(date, "Reversal of: "+original.Memo, lines, now)
	if err != nil {
		return domain.Journal{}, nil, nil, err
	}
	journal.OriginalJournalID = &original.JournalID
	return journal, transactions, balanceChanges, nil
}

// verifyAccountsUsable checks every referenced account exists and is active.
func verifyAccountsUsable(ctx context.Context, reader portrepo.AccountReader, accountIDs []string) (map[string]domain.Account, error) {
	unique := make([]string, 0, len(accountIDs))
	seen := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	accounts, err := reader.FindAccountsByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, id := range unique {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}
	return accounts, nil
}
