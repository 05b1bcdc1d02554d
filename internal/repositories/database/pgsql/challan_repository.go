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

type PgxChallanRepository struct {
	BaseRepository
}

// newPgxChallanRepository creates a new repository for delivery challan data.
func newPgxChallanRepository(pool *pgxpool.Pool) portsrepo.ChallanRepositoryFacade {
	return &PgxChallanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ChallanRepositoryFacade = (*PgxChallanRepository)(nil)

const challanColumns = `challan_id, challan_number, invoice_id, customer_id, delivery_date, vehicle_number, notes, created_at, last_updated_at`

func scanChallan(row pgx.Row) (domain.DeliveryChallan, error) {
	var ch domain.DeliveryChallan
	err := row.Scan(
		&ch.ChallanID,
		&ch.ChallanNumber,
		&ch.InvoiceID,
		&ch.CustomerID,
		&ch.DeliveryDate,
		&ch.VehicleNumber,
		&ch.Notes,
		&ch.CreatedAt,
		&ch.LastUpdatedAt,
	)
	return ch, err
}

func (r *PgxChallanRepository) attachChallanItems(ctx context.Context, q dbQuerier, challans []domain.DeliveryChallan) error {
	ids := make([]string, len(challans))
	for i := range challans {
		ids[i] = challans[i].ChallanID
	}
	items, err := loadLineItems(ctx, q, "challan_items", "challan_id", ids)
	if err != nil {
		return err
	}
	for i := range challans {
		challans[i].Items = items[challans[i].ChallanID]
	}
	return nil
}

// SaveChallanInTx persists a challan inside the invoice-conversion transaction.
func (r *PgxChallanRepository) SaveChallanInTx(ctx context.Context, tx pgx.Tx, challan domain.DeliveryChallan) error {
	query := `
		INSERT INTO delivery_challans (` + challanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		challan.ChallanID,
		challan.ChallanNumber,
		challan.InvoiceID,
		challan.CustomerID,
		challan.DeliveryDate,
		challan.VehicleNumber,
		challan.Notes,
		challan.CreatedAt,
		challan.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert challan "+challan.ChallanID, err)
	}
	return insertLineItems(ctx, tx, "challan_items", "challan_id", challan.ChallanID, challan.Items)
}

func (r *PgxChallanRepository) FindChallanByID(ctx context.Context, challanID string) (*domain.DeliveryChallan, error) {
	query := `SELECT ` + challanColumns + ` FROM delivery_challans WHERE challan_id = $1;`
	challan, err := scanChallan(r.Pool.QueryRow(ctx, query, challanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("challan " + challanID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find challan by ID "+challanID, err)
	}

	challans := []domain.DeliveryChallan{challan}
	if err := r.attachChallanItems(ctx, r.Pool, challans); err != nil {
		return nil, err
	}
	return &challans[0], nil
}

func (r *PgxChallanRepository) listChallans(ctx context.Context, query string) ([]domain.DeliveryChallan, error) {
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query challans", err)
	}
	defer rows.Close()

	challans := []domain.DeliveryChallan{}
	for rows.Next() {
		challan, err := scanChallan(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan challan row", err)
		}
		challans = append(challans, challan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating challan rows", err)
	}

	if err := r.attachChallanItems(ctx, r.Pool, challans); err != nil {
		return nil, err
	}
	return challans, nil
}

func (r *PgxChallanRepository) ListChallans(ctx context.Context) ([]domain.DeliveryChallan, error) {
	return r.listChallans(ctx, `SELECT `+challanColumns+` FROM delivery_challans ORDER BY delivery_date DESC, created_at DESC;`)
}

// FindAllChallans retrieves every challan, oldest first.
func (r *PgxChallanRepository) FindAllChallans(ctx context.Context) ([]domain.DeliveryChallan, error) {
	return r.listChallans(ctx, `SELECT `+challanColumns+` FROM delivery_challans ORDER BY created_at, challan_id;`)
}

// UpdateChallan updates delivery details. Items mirror the source invoice and
// are not rewritten here.
func (r *PgxChallanRepository) UpdateChallan(ctx context.Context, challan domain.DeliveryChallan) error {
	query := `
		UPDATE delivery_challans
		SET delivery_date = $2, vehicle_number = $3, notes = $4, last_updated_at = $5
		WHERE challan_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		challan.ChallanID,
		challan.DeliveryDate,
		challan.VehicleNumber,
		challan.Notes,
		challan.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update challan "+challan.ChallanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("challan " + challan.ChallanID + " not found")
	}
	return nil
}

// DeleteChallan removes a challan, its items, and the link on the source
// invoice so the invoice can be converted again.
func (r *PgxChallanRepository) DeleteChallan(ctx context.Context, challanID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `UPDATE invoices SET challan_id = NULL WHERE challan_id = $1;`, challanID); err != nil {
		return apperrors.NewAppError(500, "failed to unlink challan "+challanID, err)
	}
	if err := deleteLineItems(ctx, tx, "challan_items", "challan_id", challanID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM delivery_challans WHERE challan_id = $1;`, challanID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete challan "+challanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("challan " + challanID + " not found")
	}
	return r.Commit(ctx, tx)
}
