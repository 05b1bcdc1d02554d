package accounting

import (
	"fmt"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta returns the balance delta a transaction line applies to its
// account: +amount for a debit, -amount for a credit. Account balances store
// the cumulative net of these deltas for every account type; the
// presentation-side sign flip for liability/equity/revenue accounts happens
// only at report time (see DisplayBalance).
func SignedDelta(txnType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txnType == domain.Debit {
		return amount
	}
	return amount.Neg()
}

// DisplayBalance folds in the opening balance and orients the stored net
// (+debit -credit) so that each account type reads positive in its natural
// direction.
func DisplayBalance(accountType domain.AccountType, balance, openingBalance decimal.Decimal) decimal.Decimal {
	total := balance.Add(openingBalance)
	switch accountType {
	case domain.Asset, domain.ExpenseType:
		return total
	case domain.Liability, domain.Equity, domain.Revenue:
		return total.Neg()
	}
	return total
}

// ValidateJournalBalance checks the double-entry invariant for a set of
// transaction lines: at least two lines, every amount positive, and the sum
// of debits equal to the sum of credits and greater than zero.
func ValidateJournalBalance(transactions []domain.Transaction) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal must have at least two transaction entries")
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero
	for _, txn := range transactions {
		if txn.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("transaction amount must be positive for account %s", txn.AccountID)
		}
		if txn.TransactionType == domain.Debit {
			debitsSum = debitsSum.Add(txn.Amount)
		} else {
			creditsSum = creditsSum.Add(txn.Amount)
		}
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debitsSum.String(), creditsSum.String())
	}
	if debitsSum.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("journal total must be greater than zero")
	}
	return nil
}

// DeriveDocumentStatus computes the displayed status of a billable document.
// Payment history wins: fully covered documents are PAID, anything partially
// covered is PARTIALLY_PAID, and otherwise the stored status stands.
func DeriveDocumentStatus(stored domain.DocumentStatus, grandTotal, totalPaid decimal.Decimal) domain.DocumentStatus {
	if totalPaid.GreaterThanOrEqual(grandTotal) && totalPaid.GreaterThan(decimal.Zero) {
		return domain.StatusPaid
	}
	if totalPaid.GreaterThan(decimal.Zero) {
		return domain.StatusPartiallyPaid
	}
	return stored
}

// ClassifyAge maps days-past-due to an aging bucket.
func ClassifyAge(daysPastDue int) domain.AgingBucket {
	switch {
	case daysPastDue <= 0:
		return domain.BucketCurrent
	case daysPastDue <= 30:
		return domain.Bucket1To30
	case daysPastDue <= 60:
		return domain.Bucket31To60
	case daysPastDue <= 90:
		return domain.Bucket61To90
	default:
		return domain.BucketOver90
	}
}
