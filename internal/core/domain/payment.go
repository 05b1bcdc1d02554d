package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single receipt or disbursement attached to a document.
// Once attached it is immutable; document payment lists are append-only.
type Payment struct {
	PaymentID string          `json:"paymentID"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	AccountID string          `json:"accountID"` // deposit account for receipts, source account for disbursements
	Notes     string          `json:"notes"`
	AuditFields
}
