package repositories

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExpenseRepositoryFacade defines storage operations for expenses. Writes all
// participate in a caller-owned transaction because every expense mutation is
// paired with a journal posting.
type ExpenseRepositoryFacade interface {
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	DeleteExpenseInTx(ctx context.Context, tx pgx.Tx, expenseID string) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	FindAllExpenses(ctx context.Context) ([]domain.Expense, error)
}
