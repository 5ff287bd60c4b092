package services

import (
	"context"
	"errors"
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

var (
	ErrAccountCodeTaken    = errors.New("account code already in use in this company")
	ErrParentNotFound      = errors.New("parent account not found in this company")
	ErrParentTypeMismatch  = errors.New("parent account type does not match")
	ErrAccountHasChildren  = errors.New("account has active child accounts")
	ErrAccountHasBalance   = errors.New("account balance is not zero")
	ErrAccountNotInCompany = errors.New("account does not belong to this company")
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryWithTx
	companySvc  portssvc.CompanySvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryWithTx, companySvc portssvc.CompanySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		voucherRepo: voucherRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account in a company's chart after validating
// code uniqueness and the parent link.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.GetCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", companyID, err)
	}

	existing, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, []string{req.Code})
	if err != nil {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if _, taken := existing[req.Code]; taken {
		return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.Code)
	}

	var parentID string
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrParentNotFound, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		// Parent links never cross companies; the subtree roll-up relies on it.
		if parent.CompanyID != companyID {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, *req.ParentAccountID)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent is %s, child is %s", ErrParentTypeMismatch, parent.AccountType, req.AccountType)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent %s is inactive", apperrors.ErrValidation, *req.ParentAccountID)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		GroupName:       req.GroupName,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// The unique index catches codes racing past the pre-check.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account, scoped to the company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		// Hide other companies' accounts entirely.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves active accounts for a company, ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	if _, err := s.companySvc.GetCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", companyID, err)
	}
	return s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
}

// UpdateAccount updates the mutable fields of an account. Code, type and
// parent are fixed at creation.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.GroupName != nil {
		account.GroupName = *req.GroupName
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account. The account must have no active
// children and a zero balance; its historical entries stay untouched.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}

	subtreeIDs, err := s.accountRepo.FindSubtreeAccountIDs(ctx, companyID, accountID)
	if err != nil {
		return fmt.Errorf("failed to inspect account subtree: %w", err)
	}
	if len(subtreeIDs) > 1 {
		return fmt.Errorf("%w: account %s", ErrAccountHasChildren, accountID)
	}

	sums, err := s.voucherRepo.SumEntriesByAccountIDs(ctx, []string{accountID}, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to check account balance: %w", err)
	}
	if sum, ok := sums[accountID]; ok && !sum.IsZero() {
		return fmt.Errorf("%w: account %s has balance %s", ErrAccountHasBalance, accountID, sum)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID), slog.String("company_id", companyID))
	return nil
}

// SeedDefaultChart creates the standard pawn-shop chart for a company that
// does not have one yet. Safe to call only on an empty chart.
func (s *accountService) SeedDefaultChart(ctx context.Context, companyID string, creatorUserID string) ([]domain.Account, error) {
	if _, err := s.companySvc.GetCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", companyID, err)
	}

	existing, err := s.accountRepo.ListAccounts(ctx, companyID, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect existing chart: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: company %s already has accounts", apperrors.ErrConflict, companyID)
	}

	chart := defaultChartAccounts(companyID, creatorUserID, time.Now().UTC())

	tx, err := s.voucherRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.voucherRepo.Rollback(ctx, tx)

	if err := s.accountRepo.SaveAccountsInTx(ctx, tx, chart); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return chart, nil
}
