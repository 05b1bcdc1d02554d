package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a customer-facing billable document. Status holds the stored
// (non-derived) status; the displayed status is computed from the payment
// history on top of it. Payments is append-only.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerID    string          `json:"customerID"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Items         []LineItem      `json:"items"`
	Status        DocumentStatus  `json:"status"`
	Payments      []Payment       `json:"payments"`
	PreviousDue   decimal.Decimal `json:"previousDue"`
	Discount      decimal.Decimal `json:"discount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	ChallanID     *string         `json:"challanID,omitempty"` // set once converted to a delivery challan
	AuditFields
}

// Subtotal is the sum of the invoice's line totals.
func (inv *Invoice) Subtotal() decimal.Decimal {
	return ItemsSubtotal(inv.Items)
}

// GrandTotal is subtotal + previous due - discount + tax.
func (inv *Invoice) GrandTotal() decimal.Decimal {
	return inv.Subtotal().Add(inv.PreviousDue).Sub(inv.Discount).Add(inv.TaxAmount)
}

// TotalPaid is the sum of recorded payments.
func (inv *Invoice) TotalPaid() decimal.Decimal {
	return PaymentsTotal(inv.Payments)
}

// BalanceDue is grand total minus total paid. May be negative on overpayment.
func (inv *Invoice) BalanceDue() decimal.Decimal {
	return inv.GrandTotal().Sub(inv.TotalPaid())
}
