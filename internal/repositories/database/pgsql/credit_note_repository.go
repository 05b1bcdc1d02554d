package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portsrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCreditNoteRepository struct {
	BaseRepository
}

// newPgxCreditNoteRepository creates a new repository for credit note data.
func newPgxCreditNoteRepository(pool *pgxpool.Pool) portsrepo.CreditNoteRepositoryFacade {
	return &PgxCreditNoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CreditNoteRepositoryFacade = (*PgxCreditNoteRepository)(nil)

const creditNoteColumns = `credit_note_id, credit_note_number, original_invoice_id, customer_id, issue_date, status, reason, tax_amount, journal_id, created_at, last_updated_at`

func scanCreditNote(row pgx.Row) (domain.CreditNote, error) {
	var cn domain.CreditNote
	err := row.Scan(
		&cn.CreditNoteID,
		&cn.CreditNoteNumber,
		&cn.OriginalInvoiceID,
		&cn.CustomerID,
		&cn.IssueDate,
		&cn.Status,
		&cn.Reason,
		&cn.TaxAmount,
		&cn.JournalID,
		&cn.CreatedAt,
		&cn.LastUpdatedAt,
	)
	return cn, err
}

func (r *PgxCreditNoteRepository) attachCreditNoteItems(ctx context.Context, q dbQuerier, notes []domain.CreditNote) error {
	ids := make([]string, len(notes))
	for i := range notes {
		ids[i] = notes[i].CreditNoteID
	}
	items, err := loadLineItems(ctx, q, "credit_note_items", "credit_note_id", ids)
	if err != nil {
		return err
	}
	for i := range notes {
		notes[i].Items = items[notes[i].CreditNoteID]
	}
	return nil
}

// SaveCreditNote persists a new draft credit note with its items.
func (r *PgxCreditNoteRepository) SaveCreditNote(ctx context.Context, note domain.CreditNote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO credit_notes (` + creditNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		note.CreditNoteID,
		note.CreditNoteNumber,
		note.OriginalInvoiceID,
		note.CustomerID,
		note.IssueDate,
		note.Status,
		note.Reason,
		note.TaxAmount,
		note.JournalID,
		note.CreatedAt,
		note.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert credit note "+note.CreditNoteID, err)
	}
	if err := insertLineItems(ctx, tx, "credit_note_items", "credit_note_id", note.CreditNoteID, note.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateCreditNote rewrites a draft note's header and items.
func (r *PgxCreditNoteRepository) UpdateCreditNote(ctx context.Context, note domain.CreditNote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE credit_notes
		SET credit_note_number = $2, issue_date = $3, reason = $4, tax_amount = $5, last_updated_at = $6
		WHERE credit_note_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		note.CreditNoteID,
		note.CreditNoteNumber,
		note.IssueDate,
		note.Reason,
		note.TaxAmount,
		note.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update credit note "+note.CreditNoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("credit note " + note.CreditNoteID + " not found")
	}

	if err := deleteLineItems(ctx, tx, "credit_note_items", "credit_note_id", note.CreditNoteID); err != nil {
		return err
	}
	if err := insertLineItems(ctx, tx, "credit_note_items", "credit_note_id", note.CreditNoteID, note.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteCreditNote removes a draft note and its items.
func (r *PgxCreditNoteRepository) DeleteCreditNote(ctx context.Context, creditNoteID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := deleteLineItems(ctx, tx, "credit_note_items", "credit_note_id", creditNoteID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM credit_notes WHERE credit_note_id = $1;`, creditNoteID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete credit note "+creditNoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("credit note " + creditNoteID + " not found")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCreditNoteRepository) findCreditNote(ctx context.Context, q dbQuerier, creditNoteID string, forUpdate bool) (*domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE credit_note_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	note, err := scanCreditNote(q.QueryRow(ctx, query+`;`, creditNoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("credit note " + creditNoteID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find credit note by ID "+creditNoteID, err)
	}

	notes := []domain.CreditNote{note}
	if err := r.attachCreditNoteItems(ctx, q, notes); err != nil {
		return nil, err
	}
	return &notes[0], nil
}

func (r *PgxCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	return r.findCreditNote(ctx, r.Pool, creditNoteID, false)
}

// FindCreditNoteByIDForUpdate loads and row-locks one note inside the
// finalization transaction.
func (r *PgxCreditNoteRepository) FindCreditNoteByIDForUpdate(ctx context.Context, tx pgx.Tx, creditNoteID string) (*domain.CreditNote, error) {
	return r.findCreditNote(ctx, tx, creditNoteID, true)
}

func (r *PgxCreditNoteRepository) listCreditNotes(ctx context.Context, query string, args ...any) ([]domain.CreditNote, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query credit notes", err)
	}
	defer rows.Close()

	notes := []domain.CreditNote{}
	for rows.Next() {
		note, err := scanCreditNote(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan credit note row", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating credit note rows", err)
	}

	if err := r.attachCreditNoteItems(ctx, r.Pool, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListCreditNotes retrieves notes newest first, optionally filtered by customer.
func (r *PgxCreditNoteRepository) ListCreditNotes(ctx context.Context, customerID string) ([]domain.CreditNote, error) {
	if customerID != "" {
		query := `SELECT ` + creditNoteColumns + ` FROM credit_notes WHERE customer_id = $1 ORDER BY issue_date DESC, created_at DESC;`
		return r.listCreditNotes(ctx, query, customerID)
	}
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes ORDER BY issue_date DESC, created_at DESC;`
	return r.listCreditNotes(ctx, query)
}

// FindAllCreditNotes retrieves every note, oldest first.
func (r *PgxCreditNoteRepository) FindAllCreditNotes(ctx context.Context) ([]domain.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + ` FROM credit_notes ORDER BY created_at, credit_note_id;`
	return r.listCreditNotes(ctx, query)
}

// FinalizeCreditNoteInTx marks a note finalized and links its journal entry.
func (r *PgxCreditNoteRepository) FinalizeCreditNoteInTx(ctx context.Context, tx pgx.Tx, creditNoteID string, journalID string, now time.Time) error {
	query := `
		UPDATE credit_notes
		SET status = $2, journal_id = $3, last_updated_at = $4
		WHERE credit_note_id = $1;
	`
	tag, err := tx.Exec(ctx, query, creditNoteID, domain.CreditNoteFinalized, journalID, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to finalize credit note "+creditNoteID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("credit note " + creditNoteID + " not found")
	}
	return nil
}
