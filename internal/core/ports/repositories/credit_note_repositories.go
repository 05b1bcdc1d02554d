package repositories

import (
	"context"
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CreditNoteRepositoryFacade defines storage operations for credit notes.
type CreditNoteRepositoryFacade interface {
	SaveCreditNote(ctx context.Context, note domain.CreditNote) error

	// UpdateCreditNote rewrites a draft note's header and items. Callers
	// must have verified the note is not finalized.
	UpdateCreditNote(ctx context.Context, note domain.CreditNote) error

	DeleteCreditNote(ctx context.Context, creditNoteID string) error
	FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)
	ListCreditNotes(ctx context.Context, customerID string) ([]domain.CreditNote, error)
	FindAllCreditNotes(ctx context.Context) ([]domain.CreditNote, error)

	// FindCreditNoteByIDForUpdate loads and row-locks one note inside the
	// finalization transaction.
	FindCreditNoteByIDForUpdate(ctx context.Context, tx pgx.Tx, creditNoteID string) (*domain.CreditNote, error)

	// FinalizeCreditNoteInTx marks a note finalized and links its journal entry.
	FinalizeCreditNoteInTx(ctx context.Context, tx pgx.Tx, creditNoteID string, journalID string, now time.Time) error
}
