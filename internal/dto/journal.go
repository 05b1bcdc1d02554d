package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one debit or credit line of a manual journal entry.
type CreateJournalLineRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string                 `json:"notes"`
}

// CreateJournalRequest defines the payload for posting a manual journal entry.
type CreateJournalRequest struct {
	Date  time.Time                  `json:"date" binding:"required"`
	Memo  string                     `json:"memo" binding:"required"`
	Lines []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TransactionResponse defines the data returned for a journal line.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Notes           string          `json:"notes,omitempty"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	JournalDate     time.Time       `json:"journalDate,omitempty"`
	JournalMemo     string          `json:"journalMemo,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               time.Time             `json:"date"`
	Memo               string                `json:"memo"`
	Status             string                `json:"status"`
	Amount             decimal.Decimal       `json:"amount"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	Transactions       []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	Limit               int     `form:"limit"`
	NextToken           *string `form:"nextToken"`
	IncludeReversals    bool    `form:"includeReversals"`
	IncludeTransactions bool    `form:"includeTransactions"`
}

// ListJournalsResponse wraps a page of journals with a continuation token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListTransactionsParams holds query parameters for listing an account's lines.
type ListTransactionsParams struct {
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListTransactionsResponse wraps a page of transaction lines.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		Notes:           txn.Notes,
		RunningBalance:  txn.RunningBalance,
		JournalDate:     txn.JournalDate,
		JournalMemo:     txn.JournalMemo,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to responses.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate,
		Memo:               j.Memo,
		Status:             string(j.Status),
		Amount:             j.Amount,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		Transactions:       ToTransactionResponses(j.Transactions),
		CreatedAt:          j.CreatedAt,
	}
}
