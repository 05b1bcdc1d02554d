package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the lifecycle status of a quotation.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "DRAFT"
	QuoteSent     QuoteStatus = "SENT"
	QuoteAccepted QuoteStatus = "ACCEPTED"
	QuoteDeclined QuoteStatus = "DECLINED"
)

// Quote is a quotation that can be converted into a job or an invoice.
// The conversion links make the conversions idempotent: once a link is set,
// converting again is rejected.
type Quote struct {
	QuoteID              string          `json:"quoteID"`
	QuoteNumber          string          `json:"quoteNumber"`
	CustomerID           string          `json:"customerID"`
	IssueDate            time.Time       `json:"issueDate"`
	ExpiryDate           time.Time       `json:"expiryDate"`
	Items                []LineItem      `json:"items"`
	Status               QuoteStatus     `json:"status"`
	Discount             decimal.Decimal `json:"discount"`
	TaxAmount            decimal.Decimal `json:"taxAmount"`
	ConvertedToJobID     *string         `json:"convertedToJobID,omitempty"`
	ConvertedToInvoiceID *string         `json:"convertedToInvoiceID,omitempty"`
	AuditFields
}

// Subtotal is the sum of the quote's line totals.
func (q *Quote) Subtotal() decimal.Decimal {
	return ItemsSubtotal(q.Items)
}

// GrandTotal is subtotal - discount + tax.
func (q *Quote) GrandTotal() decimal.Decimal {
	return q.Subtotal().Sub(q.Discount).Add(q.TaxAmount)
}

// JobStatus is the lifecycle status of a job created from a quote.
type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobDone       JobStatus = "DONE"
)

// Job is a work order produced by converting an accepted quote. It carries
// no ledger effect of its own.
type Job struct {
	JobID      string     `json:"jobID"`
	QuoteID    string     `json:"quoteID"`
	CustomerID string     `json:"customerID"`
	Title      string     `json:"title"`
	Items      []LineItem `json:"items"`
	Status     JobStatus  `json:"status"`
	AuditFields
}
