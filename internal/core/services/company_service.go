package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
)

// companyService provides company lifecycle operations.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a company and seeds its default chart of accounts in
// the same transaction, so a company never exists without a usable chart.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	tx, err := s.companyRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.companyRepo.Rollback(ctx, tx) // No-op once committed

	if err := s.companyRepo.SaveCompanyInTx(ctx, tx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, err
	}

	chart := defaultChartAccounts(company.CompanyID, creatorUserID, now)
	if err := s.accountRepo.SaveAccountsInTx(ctx, tx, chart); err != nil {
		logger.Error("Failed to seed default chart", slog.String("company_id", company.CompanyID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.companyRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Company created with seeded chart",
		slog.String("company_id", company.CompanyID),
		slog.Int("accounts_seeded", len(chart)))
	return &company, nil
}

// GetCompanyByID retrieves a company by its ID. Deactivated companies are
// closed to all ledger operations.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, fmt.Errorf("%w: company %s is deactivated", apperrors.ErrForbidden, companyID)
	}
	return company, nil
}
