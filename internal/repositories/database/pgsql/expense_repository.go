package pgsql

import (
	"context"
	"errors"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portsrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, expense_date, description, amount, debit_account_id, credit_account_id, attachment_url, journal_id, created_at, last_updated_at`

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.Date,
		&e.Description,
		&e.Amount,
		&e.DebitAccountID,
		&e.CreditAccountID,
		&e.AttachmentURL,
		&e.JournalID,
		&e.CreatedAt,
		&e.LastUpdatedAt,
	)
	return e, err
}

// SaveExpenseInTx persists an expense inside the caller's posting transaction.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		expense.ExpenseID,
		expense.Date,
		expense.Description,
		expense.Amount,
		expense.DebitAccountID,
		expense.CreditAccountID,
		expense.AttachmentURL,
		expense.JournalID,
		expense.CreatedAt,
		expense.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+expense.ExpenseID, err)
	}
	return nil
}

// UpdateExpenseInTx rewrites an expense row, including its journal link,
// inside the caller's reverse-and-repost transaction.
func (r *PgxExpenseRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET expense_date = $2, description = $3, amount = $4, debit_account_id = $5,
		    credit_account_id = $6, attachment_url = $7, journal_id = $8, last_updated_at = $9
		WHERE expense_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		expense.ExpenseID,
		expense.Date,
		expense.Description,
		expense.Amount,
		expense.DebitAccountID,
		expense.CreditAccountID,
		expense.AttachmentURL,
		expense.JournalID,
		expense.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense " + expense.ExpenseID + " not found")
	}
	return nil
}

// DeleteExpenseInTx removes an expense row inside the caller's transaction.
func (r *PgxExpenseRepository) DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense " + expenseID + " not found")
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("expense " + expenseID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}
	return &expense, nil
}

func (r *PgxExpenseRepository) listExpenses(ctx context.Context, query string) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return r.listExpenses(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY expense_date DESC, created_at DESC;`)
}

// FindAllExpenses retrieves every expense, oldest first.
func (r *PgxExpenseRepository) FindAllExpenses(ctx context.Context) ([]domain.Expense, error) {
	return r.listExpenses(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY created_at, expense_id;`)
}
