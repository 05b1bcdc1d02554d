package services

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data. There is
// deliberately no in-place update of a posted entry: reversing and reposting
// is the only way to change one, otherwise account balances already computed
// from the original lines would desynchronize.
type JournalWriterSvc interface {
	// CreateJournal posts a manual journal entry after validating the
	// double-entry invariant.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error)

	// ReverseJournal posts a mirror entry for a previously posted journal
	// and marks the original reversed. Both entries stay in the log.
	ReverseJournal(ctx context.Context, journalID string) (*domain.Journal, error)
}

// TransactionReaderSvc defines read operations for transaction lines.
type TransactionReaderSvc interface {
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	TransactionReaderSvc
}
