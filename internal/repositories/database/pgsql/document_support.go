package pgsql

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// Line items and payments are stored in per-document child tables that share
// one shape. The helpers below take the table and parent column names from
// package constants, never from input.

func insertLineItems(ctx context.Context, q dbQuerier, table, parentColumn, parentID string, items []domain.LineItem) error {
	query := `
		INSERT INTO ` + table + ` (item_id, ` + parentColumn + `, description, quantity, unit_price, position)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(query, item.ItemID, parentID, item.Description, item.Quantity, item.UnitPrice, i)
	}
	br := q.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items into "+table, err)
	}
	return nil
}

func deleteLineItems(ctx context.Context, q dbQuerier, table, parentColumn, parentID string) error {
	if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE `+parentColumn+` = $1;`, parentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete line items from "+table, err)
	}
	return nil
}

func loadLineItems(ctx context.Context, q dbQuerier, table, parentColumn string, parentIDs []string) (map[string][]domain.LineItem, error) {
	if len(parentIDs) == 0 {
		return map[string][]domain.LineItem{}, nil
	}
	query := `
		SELECT item_id, ` + parentColumn + `, description, quantity, unit_price
		FROM ` + table + `
		WHERE ` + parentColumn + ` = ANY($1)
		ORDER BY position;
	`
	rows, err := q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items from "+table, err)
	}
	defer rows.Close()

	byParent := make(map[string][]domain.LineItem, len(parentIDs))
	for rows.Next() {
		var item domain.LineItem
		var parentID string
		if err := rows.Scan(&item.ItemID, &parentID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row from "+table, err)
		}
		byParent[parentID] = append(byParent[parentID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows from "+table, err)
	}
	return byParent, nil
}

func insertPayment(ctx context.Context, q dbQuerier, table, parentColumn, parentID string, payment domain.Payment) error {
	query := `
		INSERT INTO ` + table + ` (payment_id, ` + parentColumn + `, payment_date, amount, method, account_id, notes, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := q.Exec(ctx, query,
		payment.PaymentID,
		parentID,
		payment.Date,
		payment.Amount,
		payment.Method,
		payment.AccountID,
		payment.Notes,
		payment.CreatedAt,
		payment.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment into "+table, err)
	}
	return nil
}

func loadPayments(ctx context.Context, q dbQuerier, table, parentColumn string, parentIDs []string) (map[string][]domain.Payment, error) {
	if len(parentIDs) == 0 {
		return map[string][]domain.Payment{}, nil
	}
	query := `
		SELECT payment_id, ` + parentColumn + `, payment_date, amount, method, account_id, notes, created_at, last_updated_at
		FROM ` + table + `
		WHERE ` + parentColumn + ` = ANY($1)
		ORDER BY created_at, payment_id;
	`
	rows, err := q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments from "+table, err)
	}
	defer rows.Close()

	byParent := make(map[string][]domain.Payment, len(parentIDs))
	for rows.Next() {
		var p domain.Payment
		var parentID string
		err := rows.Scan(&p.PaymentID, &parentID, &p.Date, &p.Amount, &p.Method, &p.AccountID, &p.Notes, &p.CreatedAt, &p.LastUpdatedAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row from "+table, err)
		}
		byParent[parentID] = append(byParent[parentID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows from "+table, err)
	}
	return byParent, nil
}
