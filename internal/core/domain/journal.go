package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single, balanced financial event composed of multiple
// transaction lines. Journals are append-only: once posted, the only way to
// undo one is to post a mirror entry (see ReversingJournalID).
type Journal struct {
	JournalID          string          `json:"journalID"`
	JournalDate        time.Time       `json:"journalDate"`
	Memo               string          `json:"memo"`
	Status             JournalStatus   `json:"status"`
	Amount             decimal.Decimal `json:"amount"` // total of the debit side
	OriginalJournalID  *string         `json:"originalJournalID,omitempty"`
	ReversingJournalID *string         `json:"reversingJournalID,omitempty"`
	Transactions       []Transaction   `json:"transactions,omitempty"`
	AuditFields
}
