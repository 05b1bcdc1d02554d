package services

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/dto"
)

// QuoteSvcFacade defines operations on quotes, jobs and their conversions.
// Conversions carry no ledger effect; the link ids make them idempotent.
type QuoteSvcFacade interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*domain.Quote, error)
	UpdateQuote(ctx context.Context, quoteID string, req dto.UpdateQuoteRequest) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, quoteID string) error
	GetQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)
	ListQuotes(ctx context.Context, customerID string) ([]domain.Quote, error)

	ConvertToJob(ctx context.Context, quoteID string, req dto.ConvertQuoteToJobRequest) (*domain.Job, error)
	ConvertToInvoice(ctx context.Context, quoteID string, req dto.ConvertQuoteToInvoiceRequest) (*domain.Invoice, error)

	GetJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.Job, error)
}

// ChallanSvcFacade defines operations on delivery challans.
type ChallanSvcFacade interface {
	GetChallanByID(ctx context.Context, challanID string) (*domain.DeliveryChallan, error)
	ListChallans(ctx context.Context) ([]domain.DeliveryChallan, error)
	UpdateChallan(ctx context.Context, challanID string, req dto.UpdateChallanRequest) (*domain.DeliveryChallan, error)
	DeleteChallan(ctx context.Context, challanID string) error
}

// CreditNoteSvcFacade defines operations on credit notes. Finalizing posts
// the journal entry and freezes the note.
type CreditNoteSvcFacade interface {
	CreateCreditNote(ctx context.Context, req dto.CreateCreditNoteRequest) (*domain.CreditNote, error)
	UpdateCreditNote(ctx context.Context, creditNoteID string, req dto.UpdateCreditNoteRequest) (*domain.CreditNote, error)
	DeleteCreditNote(ctx context.Context, creditNoteID string) error
	GetCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)
	ListCreditNotes(ctx context.Context, customerID string) ([]domain.CreditNote, error)
	FinalizeCreditNote(ctx context.Context, creditNoteID string) (*domain.CreditNote, error)
}

// ExpenseSvcFacade defines operations on expenses. Updates and deletes never
// mutate the original journal entry; they post reversals.
type ExpenseSvcFacade interface {
	AddExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
}
