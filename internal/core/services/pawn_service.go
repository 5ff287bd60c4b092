package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

var (
	ErrPawnAmountInvalid = errors.New("pawn event amount must be positive")
	ErrChartIncomplete   = errors.New("company chart is missing a required account")
)

// pawnService expands pawn-shop business events into balanced vouchers over
// the seeded chart. All double-entry validation happens in the voucher
// service it delegates to.
type pawnService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	voucherSvc  portssvc.VoucherSvcFacade
}

// NewPawnService creates a new PawnService.
func NewPawnService(accountRepo portsrepo.AccountRepositoryFacade, voucherSvc portssvc.VoucherSvcFacade) portssvc.PawnSvcFacade {
	return &pawnService{
		accountRepo: accountRepo,
		voucherSvc:  voucherSvc,
	}
}

var _ portssvc.PawnSvcFacade = (*pawnService)(nil)

// PostPawnEvent resolves the chart accounts the event touches, builds the
// voucher template for the event type and posts it.
func (s *pawnService) PostPawnEvent(ctx context.Context, companyID string, req dto.PostPawnEventRequest, creatorUserID string) (*domain.Voucher, error) {
	accounts, err := s.resolveAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	narration := req.Narration
	if narration == "" {
		narration = fmt.Sprintf("%s for pledge %s", req.EventType, req.PledgeNo)
	}

	voucherReq := dto.CreateVoucherRequest{
		VoucherDate: req.EventDate,
		Narration:   narration,
	}

	dr := func(code string, amount decimal.Decimal) dto.CreateEntryRequest {
		return dto.CreateEntryRequest{AccountID: accounts[code], DrCr: domain.Debit, Amount: amount, Narration: "Pledge " + req.PledgeNo}
	}
	cr := func(code string, amount decimal.Decimal) dto.CreateEntryRequest {
		return dto.CreateEntryRequest{AccountID: accounts[code], DrCr: domain.Credit, Amount: amount, Narration: "Pledge " + req.PledgeNo}
	}

	switch req.EventType {
	case domain.LoanDisbursal:
		if req.Principal.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: principal %s", ErrPawnAmountInvalid, req.Principal)
		}
		voucherReq.VoucherType = domain.Payment
		voucherReq.Entries = []dto.CreateEntryRequest{
			dr(domain.CodePledgeLoans, req.Principal),
			cr(domain.CodeCash, req.Principal),
		}

	case domain.InterestReceipt:
		if req.Interest.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: interest %s", ErrPawnAmountInvalid, req.Interest)
		}
		voucherReq.VoucherType = domain.Receipt
		voucherReq.Entries = []dto.CreateEntryRequest{
			dr(domain.CodeCash, req.Interest),
			cr(domain.CodeInterestIncome, req.Interest),
		}

	case domain.Redemption:
		if req.Principal.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: principal %s", ErrPawnAmountInvalid, req.Principal)
		}
		voucherReq.VoucherType = domain.Receipt
		voucherReq.Entries = []dto.CreateEntryRequest{
			dr(domain.CodeCash, req.Principal.Add(req.Interest)),
			cr(domain.CodePledgeLoans, req.Principal),
		}
		if req.Interest.GreaterThan(decimal.Zero) {
			voucherReq.Entries = append(voucherReq.Entries, cr(domain.CodeInterestIncome, req.Interest))
		}

	case domain.Forfeiture:
		if req.Principal.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: principal %s", ErrPawnAmountInvalid, req.Principal)
		}
		voucherReq.VoucherType = domain.Journal
		voucherReq.Entries = []dto.CreateEntryRequest{
			dr(domain.CodeForfeitedInventory, req.Principal),
			cr(domain.CodePledgeLoans, req.Principal),
		}

	case domain.AuctionSale:
		if req.Principal.LessThanOrEqual(decimal.Zero) || req.SalePrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: principal %s, sale price %s", ErrPawnAmountInvalid, req.Principal, req.SalePrice)
		}
		voucherReq.VoucherType = domain.Receipt
		voucherReq.Entries = []dto.CreateEntryRequest{
			dr(domain.CodeCash, req.SalePrice),
			cr(domain.CodeForfeitedInventory, req.Principal),
		}
		// The gap between the sale price and the carried pledge value is
		// auction income or loss.
		diff := req.SalePrice.Sub(req.Principal)
		switch {
		case diff.GreaterThan(decimal.Zero):
			voucherReq.Entries = append(voucherReq.Entries, cr(domain.CodeAuctionSalesIncome, diff))
		case diff.LessThan(decimal.Zero):
			voucherReq.Entries = append(voucherReq.Entries, dr(domain.CodeAuctionLossExpense, diff.Neg()))
		}

	default:
		return nil, fmt.Errorf("unknown pawn event type %q", req.EventType)
	}

	return s.voucherSvc.CreateVoucher(ctx, companyID, voucherReq, creatorUserID)
}

// resolveAccounts maps the well-known chart codes to this company's account ids.
func (s *pawnService) resolveAccounts(ctx context.Context, companyID string) (map[string]string, error) {
	codes := []string{
		domain.CodeCash,
		domain.CodePledgeLoans,
		domain.CodeForfeitedInventory,
		domain.CodeInterestIncome,
		domain.CodeAuctionSalesIncome,
		domain.CodeAuctionLossExpense,
	}
	accountsByCode, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chart accounts: %w", err)
	}

	ids := make(map[string]string, len(codes))
	for _, code := range codes {
		acc, ok := accountsByCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: code %s", ErrChartIncomplete, code)
		}
		ids[code] = acc.AccountID
	}
	return ids, nil
}
