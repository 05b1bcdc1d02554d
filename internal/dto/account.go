package dto

import (
	"time"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
	"github.com/craftbooks/craft_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a custom account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Description    string             `json:"description"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// UpdateAccountRequest defines the payload for updating account details.
// AccountType changes are rejected for system accounts and for accounts
// already referenced by journal lines.
type UpdateAccountRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	AccountType *domain.AccountType `json:"accountType,omitempty" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	Description    string             `json:"description"`
	IsSystem       bool               `json:"isSystem"`
	IsActive       bool               `json:"isActive"`
	Balance        decimal.Decimal    `json:"balance"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	DisplayBalance decimal.Decimal    `json:"displayBalance"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Name:           a.Name,
		AccountType:    a.AccountType,
		Description:    a.Description,
		IsSystem:       a.IsSystem,
		IsActive:       a.IsActive,
		Balance:        a.Balance,
		OpeningBalance: a.OpeningBalance,
		DisplayBalance: accounting.DisplayBalance(a.AccountType, a.Balance, a.OpeningBalance),
		CreatedAt:      a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to responses.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
