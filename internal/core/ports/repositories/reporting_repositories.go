package repositories

import (
	"context"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
)

// ReportingRepository defines read-only projections over the journal log.
// The same journal log must always reproduce identical totals.
type ReportingRepository interface {
	// GetTrialBalanceData aggregates debits and credits per account as of a date.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetBalanceSheetData returns net amounts (opening balance included) for
	// asset, liability and equity accounts as of a date.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)

	// GetProfitAndLossData returns net amounts for revenue and expense
	// accounts within a period.
	GetProfitAndLossData(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)

	// GetGeneralLedgerData returns an account's journal lines within a date
	// range, oldest first with running balances.
	GetGeneralLedgerData(ctx context.Context, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error)
}
