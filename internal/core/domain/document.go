package domain

import "github.com/shopspring/decimal"

// DocumentStatus is the lifecycle status of a billable document.
// Draft, Sent and Overdue are stored (user- or scheduler-set); Paid and
// PartiallyPaid are derived from the payment history and can never be set
// directly.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "DRAFT"
	StatusSent          DocumentStatus = "SENT"
	StatusOverdue       DocumentStatus = "OVERDUE"
	StatusPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	StatusPaid          DocumentStatus = "PAID"
)

// IsDerived reports whether a status value can only result from payment
// application, never from a manual edit.
func (s DocumentStatus) IsDerived() bool {
	return s == StatusPaid || s == StatusPartiallyPaid
}

// LineItem is one billable row on an invoice, purchase order, quote,
// delivery challan or credit note.
type LineItem struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Total returns quantity * unit price for the line.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// ItemsSubtotal sums the line totals of a document.
func ItemsSubtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}
	return subtotal
}

// PaymentsTotal sums the recorded payment amounts of a document.
func PaymentsTotal(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
