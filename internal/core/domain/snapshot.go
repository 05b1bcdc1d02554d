package domain

import "time"

// Snapshot is the full serialized state of the ledger: chart of accounts,
// every document collection, and the complete journal log. It is the unit of
// export/import at the persistence boundary.
type Snapshot struct {
	ExportedAt     time.Time         `json:"exportedAt"`
	Accounts       []Account         `json:"accounts"`
	Journals       []Journal         `json:"journals"` // transactions populated
	Invoices       []Invoice         `json:"invoices"`
	PurchaseOrders []PurchaseOrder   `json:"purchaseOrders"`
	Quotes         []Quote           `json:"quotes"`
	Jobs           []Job             `json:"jobs"`
	Challans       []DeliveryChallan `json:"challans"`
	CreditNotes    []CreditNote      `json:"creditNotes"`
	Expenses       []Expense         `json:"expenses"`
}
