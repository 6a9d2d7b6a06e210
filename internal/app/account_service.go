package app

import (
	"context"
	"fmt"

	"subscription_notifier/internal/domain/account"
)

// AccountService manages the pooled shared-service accounts. Accounts are
// admin-surface entities only; nothing scheduled reads them.
type AccountService struct {
	accounts account.Repository
}

func NewAccountService(accounts account.Repository) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) Add(ctx context.Context, a *account.Account) error {
	if a.Status == "" {
		a.Status = account.StatusAvailable
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *AccountService) Get(ctx context.Context, id int64) (*account.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *AccountService) Update(ctx context.Context, a *account.Account) error {
	if err := s.accounts.Update(ctx, a); err != nil {
		return fmt.Errorf("failed to update account %d: %w", a.ID, err)
	}
	return nil
}

func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.accounts.Delete(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]*account.Account, error) {
	return s.accounts.ListAll(ctx)
}
