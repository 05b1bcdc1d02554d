package services

import (
	"context"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
)

// ReportingService defines the read-only report projections.
type ReportingService interface {
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)
	GeneralLedger(ctx context.Context, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error)
	AgedReceivables(ctx context.Context, asOf time.Time) (*domain.AgedReport, error)
	AgedPayables(ctx context.Context, asOf time.Time) (*domain.AgedReport, error)
}

// SnapshotService exports and imports the full ledger state.
type SnapshotService interface {
	Export(ctx context.Context) (*domain.Snapshot, error)

	// Import validates the snapshot (balanced journals, system accounts
	// present, account balances reconciling with the journal log) and then
	// replaces the persisted state with it.
	Import(ctx context.Context, snapshot domain.Snapshot) error
}
