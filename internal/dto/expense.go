package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the payload for recording an expense.
type CreateExpenseRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	DebitAccountID  string          `json:"debitAccountID" binding:"required"`
	CreditAccountID string          `json:"creditAccountID" binding:"required"`
	AttachmentURL   string          `json:"attachmentURL"`
}

// UpdateExpenseRequest defines the payload for updating an expense. The old
// journal entry is reversed and a new one posted; the fields here describe
// the replacement.
type UpdateExpenseRequest struct {
	Date            *time.Time       `json:"date,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	DebitAccountID  *string          `json:"debitAccountID,omitempty"`
	CreditAccountID *string          `json:"creditAccountID,omitempty"`
	AttachmentURL   *string          `json:"attachmentURL,omitempty"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID       string          `json:"expenseID"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	AttachmentURL   string          `json:"attachmentURL,omitempty"`
	JournalID       string          `json:"journalID"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListExpensesResponse wraps a list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       e.ExpenseID,
		Date:            e.Date,
		Description:     e.Description,
		Amount:          e.Amount,
		DebitAccountID:  e.DebitAccountID,
		CreditAccountID: e.CreditAccountID,
		AttachmentURL:   e.AttachmentURL,
		JournalID:       e.JournalID,
		CreatedAt:       e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to responses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
