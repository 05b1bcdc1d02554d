package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNoteStatus is the lifecycle status of a credit note.
type CreditNoteStatus string

const (
	CreditNoteDraft     CreditNoteStatus = "DRAFT"
	CreditNoteFinalized CreditNoteStatus = "FINALIZED"
)

// CreditNote reduces the receivable exposure of an invoice. Finalizing posts
// a journal entry; from then on the note can neither be edited nor deleted.
type CreditNote struct {
	CreditNoteID      string           `json:"creditNoteID"`
	CreditNoteNumber  string           `json:"creditNoteNumber"`
	OriginalInvoiceID string           `json:"originalInvoiceID"`
	CustomerID        string           `json:"customerID"`
	IssueDate         time.Time        `json:"issueDate"`
	Items             []LineItem       `json:"items"`
	Status            CreditNoteStatus `json:"status"`
	Reason            string           `json:"reason"`
	TaxAmount         decimal.Decimal  `json:"taxAmount"`
	JournalID         *string          `json:"journalID,omitempty"` // set on finalization
	AuditFields
}

// Subtotal is the sum of the note's line totals.
func (cn *CreditNote) Subtotal() decimal.Decimal {
	return ItemsSubtotal(cn.Items)
}

// Total is subtotal + tax.
func (cn *CreditNote) Total() decimal.Decimal {
	return cn.Subtotal().Add(cn.TaxAmount)
}
