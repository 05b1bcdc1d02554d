package repositories

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ChallanRepositoryFacade defines storage operations for delivery challans.
type ChallanRepositoryFacade interface {
	// SaveChallanInTx persists a challan inside the invoice-conversion transaction.
	SaveChallanInTx(ctx context.Context, tx pgx.Tx, challan domain.DeliveryChallan) error

	FindChallanByID(ctx context.Context, challanID string) (*domain.DeliveryChallan, error)
	ListChallans(ctx context.Context) ([]domain.DeliveryChallan, error)
	FindAllChallans(ctx context.Context) ([]domain.DeliveryChallan, error)
	UpdateChallan(ctx context.Context, challan domain.DeliveryChallan) error
	DeleteChallan(ctx context.Context, challanID string) error
}
