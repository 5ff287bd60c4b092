package repositories

import (
	"context"
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id. Missing ids
	// are simply absent from the map; the caller decides whether that is an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByCodes retrieves a company's accounts keyed by account code.
	FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves active accounts for a company, paginated by offset.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)

	// FindSubtreeAccountIDs returns the ids of the given account and all of
	// its descendants within the same company.
	FindSubtreeAccountIDs(ctx context.Context, companyID string, accountID string) ([]string, error)

	// FindDuplicateAccountCodes returns account codes used by more than one
	// account in the company, with the ids sharing each code.
	FindDuplicateAccountCodes(ctx context.Context, companyID string) (map[string][]string, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccountsInTx inserts a batch of accounts within an existing
	// transaction. Used when seeding a company's default chart.
	SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error

	// UpdateAccount updates mutable account fields (name, description, group).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account that is currently active.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountLocker locks account rows against concurrent deactivation while a
// voucher referencing them is being posted.
type AccountLocker interface {
	// FindAccountsByIDsForShare retrieves accounts by id with FOR SHARE row
	// locks. Must be called within a transaction; returns ErrNotFound if any
	// requested account is missing.
	FindAccountsByIDsForShare(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
