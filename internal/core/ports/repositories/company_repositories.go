package repositories

import (
	"context"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CompanyReader defines read operations for company data.
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriter defines write operations for company data.
type CompanyWriter interface {
	// SaveCompanyInTx inserts a new company within an existing transaction,
	// so the default chart can be seeded atomically with it.
	SaveCompanyInTx(ctx context.Context, tx pgx.Tx, company domain.Company) error
}

// CompanyRepositoryFacade combines all company repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
	TransactionManager
}
