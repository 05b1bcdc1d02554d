package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single line item within a Journal, affecting one account.
// Amount is always positive; the direction comes from TransactionType.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	JournalID       string          `json:"journalID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	Notes           string          `json:"notes"`
	RunningBalance  decimal.Decimal `json:"runningBalance"` // account balance after this line

	// Populated when lines are listed alongside their journal header.
	JournalDate time.Time `json:"journalDate,omitempty"`
	JournalMemo string    `json:"journalMemo,omitempty"`
	AuditFields
}
