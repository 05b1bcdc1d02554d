package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report for a period.
type PAndLReport struct {
	Revenue   []AccountAmount `json:"revenue"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet as of a date. Amounts include
// each account's opening balance, which is only folded in at report time.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

// GeneralLedgerRow is one journal line of an account within a date range.
type GeneralLedgerRow struct {
	JournalID      string          `json:"journalID"`
	JournalDate    time.Time       `json:"journalDate"`
	Memo           string          `json:"memo"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AgingBucket identifies how far past due an outstanding document is.
type AgingBucket string

const (
	BucketCurrent  AgingBucket = "CURRENT"
	Bucket1To30    AgingBucket = "1_30"
	Bucket31To60   AgingBucket = "31_60"
	Bucket61To90   AgingBucket = "61_90"
	BucketOver90   AgingBucket = "OVER_90"
)

// AgedDocumentRow is one outstanding document in an aged receivables or
// payables report.
type AgedDocumentRow struct {
	DocumentID     string          `json:"documentID"`
	DocumentNumber string          `json:"documentNumber"`
	PartyID        string          `json:"partyID"`
	DueDate        time.Time       `json:"dueDate"`
	BalanceDue     decimal.Decimal `json:"balanceDue"`
	Bucket         AgingBucket     `json:"bucket"`
}

// AgedReport groups outstanding balances by aging bucket.
type AgedReport struct {
	AsOf         time.Time                       `json:"asOf"`
	Rows         []AgedDocumentRow               `json:"rows"`
	BucketTotals map[AgingBucket]decimal.Decimal `json:"bucketTotals"`
	Total        decimal.Decimal                 `json:"total"`
}
