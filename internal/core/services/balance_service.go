package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/goldloans/pawnshop_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService computes balances and reports. Every figure is derived from
// the entries table at query time; there is no stored balance to drift out
// of sync with the ledger.
type balanceService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryWithTx
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryWithTx) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo: accountRepo,
		voucherRepo: voucherRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetAccountBalance returns the signed balance of one account over the
// optional date range. With rollup, the balance covers the account's whole
// subtree, which is how group accounts get their figures.
func (s *balanceService) GetAccountBalance(ctx context.Context, companyID string, accountID string, from *time.Time, to *time.Time, rollup bool) (*dto.AccountBalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	accountIDs := []string{accountID}
	if rollup {
		accountIDs, err = s.accountRepo.FindSubtreeAccountIDs(ctx, companyID, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve account subtree: %w", err)
		}
	}

	sums, err := s.voucherRepo.SumEntriesByAccountIDs(ctx, accountIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}

	// Raw sums are debit-minus-credit; children of a group share its type,
	// so one sign conversion at the root is enough.
	raw := decimal.Zero
	for _, sum := range sums {
		raw = raw.Add(sum)
	}
	balance := accounting.SignBalance(raw, account.AccountType)

	return &dto.AccountBalanceResponse{
		AccountID:   account.AccountID,
		Code:        account.Code,
		AccountType: account.AccountType,
		Balance:     balance,
		RolledUp:    rollup,
		From:        from,
		To:          to,
	}, nil
}

// GetTrialBalance returns per-account debit and credit totals as of a date.
// On a consistent ledger the two grand totals are equal.
func (s *balanceService) GetTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	rows, err := s.voucherRepo.TrialBalanceRows(ctx, companyID, asOf)
	if err != nil {
		return nil, err
	}

	resp := &dto.TrialBalanceResponse{
		AsOf:         asOf,
		Rows:         make([]dto.TrialBalanceRowResponse, len(rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = dto.ToTrialBalanceRowResponse(row)
		resp.TotalDebits = resp.TotalDebits.Add(row.DebitTotal)
		resp.TotalCredits = resp.TotalCredits.Add(row.CreditTotal)
	}
	return resp, nil
}
