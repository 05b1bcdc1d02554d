package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "ASSET"
	Liability   AccountType = "LIABILITY"
	Equity      AccountType = "EQUITY"
	Revenue     AccountType = "REVENUE"
	ExpenseType AccountType = "EXPENSE"
)

// Reserved identifiers of the system accounts required for core bookkeeping.
// These are created at bootstrap, can never be deleted, and their type can
// never change.
const (
	SystemAccountCash         = "acc-cash"
	SystemAccountReceivable   = "acc-receivable"
	SystemAccountPayable      = "acc-payable"
	SystemAccountInventory    = "acc-inventory"
	SystemAccountOwnersEquity = "acc-owners-equity"
	SystemAccountSalesRevenue = "acc-sales-revenue"
	SystemAccountCOGS         = "acc-cogs"
)

// SystemAccountSpec describes one reserved system account.
type SystemAccountSpec struct {
	AccountID   string
	Name        string
	AccountType AccountType
}

// SystemAccounts lists the reserved chart-of-accounts entries in bootstrap order.
func SystemAccounts() []SystemAccountSpec {
	return []SystemAccountSpec{
		{AccountID: SystemAccountCash, Name: "Cash", AccountType: Asset},
		{AccountID: SystemAccountReceivable, Name: "Accounts Receivable", AccountType: Asset},
		{AccountID: SystemAccountPayable, Name: "Accounts Payable", AccountType: Liability},
		{AccountID: SystemAccountInventory, Name: "Inventory", AccountType: Asset},
		{AccountID: SystemAccountOwnersEquity, Name: "Owner's Equity", AccountType: Equity},
		{AccountID: SystemAccountSalesRevenue, Name: "Sales Revenue", AccountType: Revenue},
		{AccountID: SystemAccountCOGS, Name: "Cost of Goods Sold", AccountType: ExpenseType},
	}
}

// Account represents a financial account within the core domain.
// Balance is the cumulative net of all journal-line deltas (+debit -credit)
// ever applied to the account; OpeningBalance is fixed at creation and only
// added at report time.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Description    string          `json:"description"`
	IsSystem       bool            `json:"isSystem"`
	IsActive       bool            `json:"isActive"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}
