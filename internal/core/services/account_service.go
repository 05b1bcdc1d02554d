package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/domain"
	portrepo "github.com/craftbooks/craft_books_app/internal/core/ports/repositories"
	portsvc "github.com/craftbooks/craft_books_app/internal/core/ports/services"
	"github.com/craftbooks/craft_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo portrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portrepo.AccountRepositoryFacade) portsvc.AccountSvcFacade {
	return &accountService{
		BaseService: NewBaseService(),
		accountRepo: accountRepo,
	}
}

// EnsureSystemAccounts creates any reserved account that does not exist yet.
// Existing accounts are left untouched so bootstrap can run on every start.
func (s *accountService) EnsureSystemAccounts(ctx context.Context) error {
	now := time.Now().UTC()
	for _, spec := range domain.SystemAccounts() {
		_, err := s.accountRepo.FindAccountByID(ctx, spec.AccountID)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check system account %s: %w", spec.AccountID, err)
		}

		account := domain.Account{
			AccountID:      spec.AccountID,
			Name:           spec.Name,
			AccountType:    spec.AccountType,
			IsSystem:       true,
			IsActive:       true,
			Balance:        decimal.Zero,
			OpeningBalance: decimal.Zero,
			AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to create system account %s: %w", spec.AccountID, err)
		}
		s.LogInfo(ctx, "system account created", "accountID", spec.AccountID)
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		AccountType:    req.AccountType,
		Description:    req.Description,
		IsSystem:       false,
		IsActive:       true,
		Balance:        decimal.Zero,
		OpeningBalance: req.OpeningBalance,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, "failed to save account", "error", err)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if account.IsSystem {
			return nil, fmt.Errorf("%w: %s", ErrSystemAccountProtected, accountID)
		}
		usage, err := s.accountRepo.CountAccountUsage(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check account usage: %w", err)
		}
		if usage > 0 {
			return nil, fmt.Errorf("%w: cannot retype %s", ErrAccountInUse, accountID)
		}
		account.AccountType = *req.AccountType
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, "failed to update account", "error", err, "accountID", accountID)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes a custom account that no journal line or expense
// references. System accounts can never be deleted.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: %s", ErrSystemAccountProtected, accountID)
	}

	usage, err := s.accountRepo.CountAccountUsage(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if usage > 0 {
		return fmt.Errorf("%w: %s", ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, "failed to delete account", "error", err, "accountID", accountID)
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.LogInfo(ctx, "account deleted", "accountID", accountID)
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}
