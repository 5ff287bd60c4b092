package pgsql

import (
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires up all pgsql-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		CompanyRepo: newPgxCompanyRepository(pool),
		AccountRepo: accountRepo,
		VoucherRepo: newPgxVoucherRepository(pool, accountRepo),
	}
}
