package pgsql

import (
	"context"
	"time"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portsrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report projections.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData aggregates debits and credits per account as of a date.
// Reversal entries stay in the aggregation; they net out against their
// originals. Opening balances are folded onto their natural side.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       COALESCE(x.debit, 0) + GREATEST(a.opening_balance, 0) AS debit,
		       COALESCE(x.credit, 0) + GREATEST(-a.opening_balance, 0) AS credit
		FROM accounts a
		LEFT JOIN (
			SELECT t.account_id,
			       COALESCE(SUM(t.amount) FILTER (WHERE t.transaction_type = 'DEBIT'), 0) AS debit,
			       COALESCE(SUM(t.amount) FILTER (WHERE t.transaction_type = 'CREDIT'), 0) AS credit
			FROM transactions t
			JOIN journals j ON j.journal_id = t.journal_id
			WHERE j.journal_date <= $1
			GROUP BY t.account_id
		) x ON x.account_id = a.account_id
		ORDER BY a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// netAmountsByType returns each account's display-oriented net amount for the
// requested account types: opening balance plus the signed journal net,
// with the sign flipped for credit-natural types.
func (r *PgxReportingRepository) netAmountsByType(ctx context.Context, accountTypes []string, from, to time.Time, includeOpening bool) (map[string][]domain.AccountAmount, error) {
	openingExpr := `0`
	if includeOpening {
		openingExpr = `a.opening_balance`
	}
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		            THEN COALESCE(x.net, 0) + ` + openingExpr + `
		            ELSE -(COALESCE(x.net, 0) + ` + openingExpr + `)
		       END AS net_amount
		FROM accounts a
		LEFT JOIN (
			SELECT t.account_id,
			       SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE -t.amount END) AS net
			FROM transactions t
			JOIN journals j ON j.journal_id = t.journal_id
			WHERE j.journal_date >= $2 AND j.journal_date <= $3
			GROUP BY t.account_id
		) x ON x.account_id = a.account_id
		WHERE a.account_type = ANY($1)
		ORDER BY a.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountTypes, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account net amounts", err)
	}
	defer rows.Close()

	byType := make(map[string][]domain.AccountAmount, len(accountTypes))
	for rows.Next() {
		var amount domain.AccountAmount
		var accountType string
		if err := rows.Scan(&amount.AccountID, &amount.Name, &accountType, &amount.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account net amount row", err)
		}
		byType[accountType] = append(byType[accountType], amount)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account net amount rows", err)
	}
	return byType, nil
}

// earliestDate is passed as the open lower bound for as-of reports.
var earliestDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// GetBalanceSheetData returns display-oriented net amounts, opening balances
// included, for asset, liability and equity accounts as of a date.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	byType, err := r.netAmountsByType(ctx, []string{"ASSET", "LIABILITY", "EQUITY"}, earliestDate, asOf, true)
	if err != nil {
		return nil, nil, nil, err
	}
	return byType["ASSET"], byType["LIABILITY"], byType["EQUITY"], nil
}

// GetProfitAndLossData returns net amounts for revenue and expense accounts
// within a period. Opening balances do not apply to period reports.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	byType, err := r.netAmountsByType(ctx, []string{"REVENUE", "EXPENSE"}, from, to, false)
	if err != nil {
		return nil, nil, err
	}
	return byType["REVENUE"], byType["EXPENSE"], nil
}

// GetGeneralLedgerData returns an account's journal lines within a date
// range, oldest first, with the stored running balances.
func (r *PgxReportingRepository) GetGeneralLedgerData(ctx context.Context, accountID string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	query := `
		SELECT t.journal_id, j.journal_date, j.memo,
		       CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END AS debit,
		       CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END AS credit,
		       t.running_balance
		FROM transactions t
		JOIN journals j ON j.journal_id = t.journal_id
		WHERE t.account_id = $1 AND j.journal_date >= $2 AND j.journal_date <= $3
		ORDER BY j.journal_date, t.created_at, t.transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query general ledger for account "+accountID, err)
	}
	defer rows.Close()

	result := []domain.GeneralLedgerRow{}
	for rows.Next() {
		var row domain.GeneralLedgerRow
		if err := rows.Scan(&row.JournalID, &row.JournalDate, &row.Memo, &row.Debit, &row.Credit, &row.RunningBalance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan general ledger row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating general ledger rows", err)
	}
	return result, nil
}
