package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a simple two-sided business cost. Each expense generates exactly
// one two-line journal entry (debit DebitAccountID, credit CreditAccountID).
// Editing or deleting an expense never mutates that entry; a reversal is
// posted instead.
type Expense struct {
	ExpenseID       string          `json:"expenseID"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	DebitAccountID  string          `json:"debitAccountID"`
	CreditAccountID string          `json:"creditAccountID"`
	AttachmentURL   string          `json:"attachmentURL,omitempty"`
	JournalID       string          `json:"journalID"` // entry currently representing this expense
	AuditFields
}
