package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is the supplier-side counterpart of an Invoice: structurally
// identical, with the asset/liability roles of its journal postings swapped.
type PurchaseOrder struct {
	PurchaseOrderID string          `json:"purchaseOrderID"`
	OrderNumber     string          `json:"orderNumber"`
	SupplierID      string          `json:"supplierID"`
	OrderDate       time.Time       `json:"orderDate"`
	DueDate         time.Time       `json:"dueDate"`
	Items           []LineItem      `json:"items"`
	Status          DocumentStatus  `json:"status"`
	Payments        []Payment       `json:"payments"`
	PreviousDue     decimal.Decimal `json:"previousDue"`
	Discount        decimal.Decimal `json:"discount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	AuditFields
}

// Subtotal is the sum of the order's line totals.
func (po *PurchaseOrder) Subtotal() decimal.Decimal {
	return ItemsSubtotal(po.Items)
}

// GrandTotal is subtotal + previous due - discount + tax.
func (po *PurchaseOrder) GrandTotal() decimal.Decimal {
	return po.Subtotal().Add(po.PreviousDue).Sub(po.Discount).Add(po.TaxAmount)
}

// TotalPaid is the sum of recorded payments.
func (po *PurchaseOrder) TotalPaid() decimal.Decimal {
	return PaymentsTotal(po.Payments)
}

// BalanceDue is grand total minus total paid.
func (po *PurchaseOrder) BalanceDue() decimal.Decimal {
	return po.GrandTotal().Sub(po.TotalPaid())
}
