package services

import (
	"context"
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
)

// AccountSvcFacade defines the chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error
	SeedDefaultChart(ctx context.Context, companyID string, creatorUserID string) ([]domain.Account, error)
}

// BalanceSvcFacade defines balance and reporting queries. Balances are
// always computed from the entries table, never read from a stored column.
type BalanceSvcFacade interface {
	GetAccountBalance(ctx context.Context, companyID string, accountID string, from *time.Time, to *time.Time, rollup bool) (*dto.AccountBalanceResponse, error)
	GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*dto.TrialBalanceResponse, error)
}
