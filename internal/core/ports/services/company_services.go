package services

import (
	"context"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
)

// CompanySvcFacade defines company lifecycle operations. Creating a company
// also seeds its default chart of accounts in the same transaction.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}
