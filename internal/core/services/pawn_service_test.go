package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/core/services"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
)

type PawnServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockVoucherSvc  *MockVoucherService
	service         portssvc.PawnSvcFacade
	ctx             context.Context

	companyID string
	userID    string
	idByCode  map[string]string

	capturedReq dto.CreateVoucherRequest
}

func (s *PawnServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockVoucherSvc = new(MockVoucherService)
	s.service = services.NewPawnService(s.mockAccountRepo, s.mockVoucherSvc)
	s.ctx = context.Background()

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()

	s.idByCode = map[string]string{
		domain.CodeCash:               uuid.NewString(),
		domain.CodePledgeLoans:        uuid.NewString(),
		domain.CodeForfeitedInventory: uuid.NewString(),
		domain.CodeInterestIncome:     uuid.NewString(),
		domain.CodeAuctionSalesIncome: uuid.NewString(),
		domain.CodeAuctionLossExpense: uuid.NewString(),
	}
}

func (s *PawnServiceTestSuite) chartAccounts() map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(s.idByCode))
	for code, id := range s.idByCode {
		accounts[code] = domain.Account{AccountID: id, CompanyID: s.companyID, Code: code, IsActive: true}
	}
	return accounts
}

func (s *PawnServiceTestSuite) expectChartResolved() {
	s.mockAccountRepo.On("FindAccountsByCodes", s.ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(s.chartAccounts(), nil).Once()
}

func (s *PawnServiceTestSuite) expectVoucherPosted() {
	s.mockVoucherSvc.On("CreateVoucher", s.ctx, s.companyID, mock.AnythingOfType("dto.CreateVoucherRequest"), s.userID).
		Run(func(args mock.Arguments) {
			s.capturedReq = args.Get(2).(dto.CreateVoucherRequest)
		}).
		Return(&domain.Voucher{VoucherID: uuid.NewString(), CompanyID: s.companyID}, nil).Once()
}

// entryFor finds the single entry hitting the given chart code.
func (s *PawnServiceTestSuite) entryFor(code string) dto.CreateEntryRequest {
	for _, e := range s.capturedReq.Entries {
		if e.AccountID == s.idByCode[code] {
			return e
		}
	}
	s.T().Fatalf("no entry for code %s", code)
	return dto.CreateEntryRequest{}
}

func (s *PawnServiceTestSuite) baseRequest(eventType domain.PawnEventType) dto.PostPawnEventRequest {
	return dto.PostPawnEventRequest{
		EventType: eventType,
		PledgeNo:  "PL-2024-0042",
		EventDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (s *PawnServiceTestSuite) TestLoanDisbursal() {
	req := s.baseRequest(domain.LoanDisbursal)
	req.Principal = decimal.RequireFromString("5000.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Payment, s.capturedReq.VoucherType)
	require.Len(s.T(), s.capturedReq.Entries, 2)

	loans := s.entryFor(domain.CodePledgeLoans)
	cash := s.entryFor(domain.CodeCash)
	assert.Equal(s.T(), domain.Debit, loans.DrCr)
	assert.Equal(s.T(), domain.Credit, cash.DrCr)
	assert.True(s.T(), loans.Amount.Equal(req.Principal))
	assert.True(s.T(), cash.Amount.Equal(req.Principal))
}

func (s *PawnServiceTestSuite) TestInterestReceipt() {
	req := s.baseRequest(domain.InterestReceipt)
	req.Principal = decimal.RequireFromString("5000.00")
	req.Interest = decimal.RequireFromString("150.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Receipt, s.capturedReq.VoucherType)
	require.Len(s.T(), s.capturedReq.Entries, 2)
	assert.Equal(s.T(), domain.Debit, s.entryFor(domain.CodeCash).DrCr)
	assert.Equal(s.T(), domain.Credit, s.entryFor(domain.CodeInterestIncome).DrCr)
	assert.True(s.T(), s.entryFor(domain.CodeCash).Amount.Equal(req.Interest))
}

func (s *PawnServiceTestSuite) TestRedemptionWithInterest() {
	req := s.baseRequest(domain.Redemption)
	req.Principal = decimal.RequireFromString("5000.00")
	req.Interest = decimal.RequireFromString("350.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	require.Len(s.T(), s.capturedReq.Entries, 3)

	cash := s.entryFor(domain.CodeCash)
	assert.Equal(s.T(), domain.Debit, cash.DrCr)
	assert.True(s.T(), cash.Amount.Equal(decimal.RequireFromString("5350.00")))
	assert.True(s.T(), s.entryFor(domain.CodePledgeLoans).Amount.Equal(req.Principal))
	assert.True(s.T(), s.entryFor(domain.CodeInterestIncome).Amount.Equal(req.Interest))
}

func (s *PawnServiceTestSuite) TestRedemptionWithoutInterest() {
	req := s.baseRequest(domain.Redemption)
	req.Principal = decimal.RequireFromString("5000.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	// No interest, no income entry.
	require.Len(s.T(), s.capturedReq.Entries, 2)
}

func (s *PawnServiceTestSuite) TestForfeiture() {
	req := s.baseRequest(domain.Forfeiture)
	req.Principal = decimal.RequireFromString("5000.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.Journal, s.capturedReq.VoucherType)
	assert.Equal(s.T(), domain.Debit, s.entryFor(domain.CodeForfeitedInventory).DrCr)
	assert.Equal(s.T(), domain.Credit, s.entryFor(domain.CodePledgeLoans).DrCr)
}

func (s *PawnServiceTestSuite) TestAuctionSaleAtGain() {
	req := s.baseRequest(domain.AuctionSale)
	req.Principal = decimal.RequireFromString("5000.00")
	req.SalePrice = decimal.RequireFromString("5600.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	require.Len(s.T(), s.capturedReq.Entries, 3)

	gain := s.entryFor(domain.CodeAuctionSalesIncome)
	assert.Equal(s.T(), domain.Credit, gain.DrCr)
	assert.True(s.T(), gain.Amount.Equal(decimal.RequireFromString("600.00")))
	assert.True(s.T(), s.entryFor(domain.CodeCash).Amount.Equal(req.SalePrice))
}

func (s *PawnServiceTestSuite) TestAuctionSaleAtLoss() {
	req := s.baseRequest(domain.AuctionSale)
	req.Principal = decimal.RequireFromString("5000.00")
	req.SalePrice = decimal.RequireFromString("4400.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	require.Len(s.T(), s.capturedReq.Entries, 3)

	loss := s.entryFor(domain.CodeAuctionLossExpense)
	assert.Equal(s.T(), domain.Debit, loss.DrCr)
	assert.True(s.T(), loss.Amount.Equal(decimal.RequireFromString("600.00")))
}

func (s *PawnServiceTestSuite) TestAuctionSaleAtBreakEven() {
	req := s.baseRequest(domain.AuctionSale)
	req.Principal = decimal.RequireFromString("5000.00")
	req.SalePrice = decimal.RequireFromString("5000.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	require.Len(s.T(), s.capturedReq.Entries, 2)
}

func (s *PawnServiceTestSuite) TestDefaultNarration() {
	req := s.baseRequest(domain.LoanDisbursal)
	req.Principal = decimal.RequireFromString("100.00")

	s.expectChartResolved()
	s.expectVoucherPosted()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	assert.Contains(s.T(), s.capturedReq.Narration, "PL-2024-0042")
	assert.Contains(s.T(), s.capturedReq.Narration, string(domain.LoanDisbursal))
}

func (s *PawnServiceTestSuite) TestNonPositivePrincipalRejected() {
	req := s.baseRequest(domain.LoanDisbursal)
	req.Principal = decimal.Zero

	s.expectChartResolved()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrPawnAmountInvalid)
	s.mockVoucherSvc.AssertNotCalled(s.T(), "CreateVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PawnServiceTestSuite) TestChartIncomplete() {
	req := s.baseRequest(domain.LoanDisbursal)
	req.Principal = decimal.RequireFromString("100.00")

	accounts := s.chartAccounts()
	delete(accounts, domain.CodeAuctionLossExpense)
	s.mockAccountRepo.On("FindAccountsByCodes", s.ctx, s.companyID, mock.AnythingOfType("[]string")).
		Return(accounts, nil).Once()

	_, err := s.service.PostPawnEvent(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrChartIncomplete)
}

func TestPawnServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PawnServiceTestSuite))
}
