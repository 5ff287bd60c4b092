package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/core/services"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	mockVoucherRepo *MockVoucherRepository
	mockAccountRepo *MockAccountRepository
	mockCompanySvc  *MockCompanyService
	service         portssvc.VoucherSvcFacade
	ctx             context.Context

	companyID string
	userID    string
	cashID    string
	loansID   string
}

func (s *VoucherServiceTestSuite) SetupTest() {
	s.mockVoucherRepo = new(MockVoucherRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCompanySvc = new(MockCompanyService)
	s.service = services.NewVoucherService(s.mockVoucherRepo, s.mockAccountRepo, s.mockCompanySvc)
	s.ctx = context.Background()

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.cashID = uuid.NewString()
	s.loansID = uuid.NewString()

	s.mockCompanySvc.On("GetCompanyByID", s.ctx, s.companyID).
		Return(&domain.Company{CompanyID: s.companyID, Name: "Test Pawn Shop"}, nil).Maybe()
}

func (s *VoucherServiceTestSuite) activeAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		s.cashID: {
			AccountID:   s.cashID,
			CompanyID:   s.companyID,
			Code:        "1010",
			AccountType: domain.Asset,
			IsActive:    true,
		},
		s.loansID: {
			AccountID:   s.loansID,
			CompanyID:   s.companyID,
			Code:        "1100",
			AccountType: domain.Asset,
			IsActive:    true,
		},
	}
}

func (s *VoucherServiceTestSuite) balancedRequest(amount string) dto.CreateVoucherRequest {
	amt := decimal.RequireFromString(amount)
	return dto.CreateVoucherRequest{
		VoucherType: domain.Payment,
		VoucherDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Narration:   "Loan disbursed against pledge 42",
		Entries: []dto.CreateEntryRequest{
			{AccountID: s.loansID, DrCr: domain.Debit, Amount: amt},
			{AccountID: s.cashID, DrCr: domain.Credit, Amount: amt},
		},
	}
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	req := s.balancedRequest("5000.00")

	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).
		Return(s.activeAccounts(), nil).Once()
	s.mockVoucherRepo.On("SaveVoucher", s.ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(nil).Once()

	voucher, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	require.NotNil(s.T(), voucher)
	assert.Equal(s.T(), domain.Posted, voucher.Status)
	assert.Equal(s.T(), s.companyID, voucher.CompanyID)
	assert.Equal(s.T(), domain.Payment, voucher.VoucherType)
	assert.Len(s.T(), voucher.Entries, 2)
	for _, e := range voucher.Entries {
		assert.Equal(s.T(), voucher.VoucherID, e.VoucherID)
		assert.NotEmpty(s.T(), e.EntryID)
	}
	s.mockVoucherRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_EntryDateDefaultsToVoucherDate() {
	req := s.balancedRequest("100.00")
	explicit := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	req.Entries[1].EntryDate = &explicit

	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).
		Return(s.activeAccounts(), nil).Once()
	s.mockVoucherRepo.On("SaveVoucher", s.ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(nil).Once()

	voucher, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), req.VoucherDate, voucher.Entries[0].EntryDate)
	assert.Equal(s.T(), explicit, voucher.Entries[1].EntryDate)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_Unbalanced() {
	req := s.balancedRequest("5000.00")
	req.Entries[1].Amount = decimal.RequireFromString("4999.99")

	voucher, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.Nil(s.T(), voucher)
	assert.ErrorIs(s.T(), err, apperrors.ErrUnbalanced)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_TooFewEntries() {
	req := s.balancedRequest("100.00")
	req.Entries = req.Entries[:1]

	_, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrVoucherMinEntries)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_SingleAccountBothSides() {
	amt := decimal.RequireFromString("100.00")
	req := s.balancedRequest("100.00")
	req.Entries = []dto.CreateEntryRequest{
		{AccountID: s.cashID, DrCr: domain.Debit, Amount: amt},
		{AccountID: s.cashID, DrCr: domain.Credit, Amount: amt},
	}

	_, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrVoucherMinAccounts)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_MissingNarration() {
	req := s.balancedRequest("100.00")
	req.Narration = ""

	_, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrNarrationMissing)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_UnknownAccount() {
	req := s.balancedRequest("100.00")

	accounts := s.activeAccounts()
	delete(accounts, s.loansID)
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).
		Return(accounts, nil).Once()

	_, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrEntryAccountRef)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_ForeignCompanyAccount() {
	req := s.balancedRequest("100.00")

	accounts := s.activeAccounts()
	foreign := accounts[s.loansID]
	foreign.CompanyID = uuid.NewString()
	accounts[s.loansID] = foreign
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).
		Return(accounts, nil).Once()

	_, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrEntryAccountRef)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_InactiveAccount() {
	req := s.balancedRequest("100.00")

	accounts := s.activeAccounts()
	inactive := accounts[s.cashID]
	inactive.IsActive = false
	accounts[s.cashID] = inactive
	s.mockAccountRepo.On("FindAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).
		Return(accounts, nil).Once()

	_, err := s.service.CreateVoucher(s.ctx, s.companyID, req, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrEntryAccountRef)
}

func (s *VoucherServiceTestSuite) TestGetVoucherByID_WrongCompanyHidden() {
	voucherID := uuid.NewString()
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).
		Return(&domain.Voucher{VoucherID: voucherID, CompanyID: uuid.NewString()}, nil).Once()

	voucher, err := s.service.GetVoucherByID(s.ctx, s.companyID, voucherID, false)

	assert.Nil(s.T(), voucher)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_Success() {
	voucherID := uuid.NewString()
	amt := decimal.RequireFromString("250.00")
	original := &domain.Voucher{
		VoucherID:   voucherID,
		CompanyID:   s.companyID,
		VoucherType: domain.Receipt,
		Narration:   "Interest received",
		Status:      domain.Posted,
	}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: s.cashID, DrCr: domain.Debit, Amount: amt},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: s.loansID, DrCr: domain.Credit, Amount: amt},
	}

	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).Return(original, nil).Once()
	s.mockVoucherRepo.On("FindEntriesByVoucherID", s.ctx, voucherID).Return(entries, nil).Once()

	var savedReversal domain.Voucher
	var savedEntries []domain.LedgerEntry
	s.mockVoucherRepo.On("SaveReversal", s.ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(1).(domain.Voucher)
			savedEntries = args.Get(2).([]domain.LedgerEntry)
		}).
		Return(nil).Once()

	reversal, err := s.service.ReverseVoucher(s.ctx, s.companyID, voucherID, s.userID)

	require.NoError(s.T(), err)
	require.NotNil(s.T(), reversal)
	require.NotNil(s.T(), reversal.OriginalVoucherID)
	assert.Equal(s.T(), voucherID, *reversal.OriginalVoucherID)
	assert.Contains(s.T(), reversal.Narration, voucherID)

	require.NotNil(s.T(), savedReversal.OriginalVoucherID)
	assert.Equal(s.T(), voucherID, *savedReversal.OriginalVoucherID)
	require.Len(s.T(), savedEntries, 2)
	assert.Equal(s.T(), domain.Credit, savedEntries[0].DrCr)
	assert.Equal(s.T(), domain.Debit, savedEntries[1].DrCr)
	assert.True(s.T(), savedEntries[0].Amount.Equal(amt))
	s.mockVoucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_ConcurrentReversalConflicts() {
	voucherID := uuid.NewString()
	amt := decimal.RequireFromString("100.00")
	original := &domain.Voucher{
		VoucherID:   voucherID,
		CompanyID:   s.companyID,
		VoucherType: domain.Receipt,
		Narration:   "Interest received",
		Status:      domain.Posted,
	}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: s.cashID, DrCr: domain.Debit, Amount: amt},
		{EntryID: uuid.NewString(), VoucherID: voucherID, AccountID: s.loansID, DrCr: domain.Credit, Amount: amt},
	}

	// A stale read can show the voucher as still open while another request
	// reverses it; the repository claim must then refuse the second attempt.
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).Return(original, nil).Once()
	s.mockVoucherRepo.On("FindEntriesByVoucherID", s.ctx, voucherID).Return(entries, nil).Once()
	s.mockVoucherRepo.On("SaveReversal", s.ctx, mock.AnythingOfType("domain.Voucher"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(fmt.Errorf("%w: voucher %s is not open for reversal", apperrors.ErrConflict, voucherID)).Once()

	reversal, err := s.service.ReverseVoucher(s.ctx, s.companyID, voucherID, s.userID)

	assert.Nil(s.T(), reversal)
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
	s.mockVoucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_AlreadyReversed() {
	voucherID := uuid.NewString()
	reversingID := uuid.NewString()
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).
		Return(&domain.Voucher{
			VoucherID:          voucherID,
			CompanyID:          s.companyID,
			Status:             domain.Posted,
			ReversingVoucherID: &reversingID,
		}, nil).Once()

	_, err := s.service.ReverseVoucher(s.ctx, s.companyID, voucherID, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrAlreadyReversed)
	// A rejected reversal never needs the entries.
	s.mockVoucherRepo.AssertNotCalled(s.T(), "FindEntriesByVoucherID", mock.Anything, mock.Anything)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_OfReversalRejected() {
	voucherID := uuid.NewString()
	originalID := uuid.NewString()
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).
		Return(&domain.Voucher{
			VoucherID:         voucherID,
			CompanyID:         s.companyID,
			Status:            domain.Posted,
			OriginalVoucherID: &originalID,
		}, nil).Once()

	_, err := s.service.ReverseVoucher(s.ctx, s.companyID, voucherID, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrIsReversal)
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_NotPosted() {
	voucherID := uuid.NewString()
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).
		Return(&domain.Voucher{VoucherID: voucherID, CompanyID: s.companyID, Status: domain.Reversed}, nil).Once()

	_, err := s.service.ReverseVoucher(s.ctx, s.companyID, voucherID, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrNotPosted)
}

func (s *VoucherServiceTestSuite) TestUpdateVoucher_NarrationAndDate() {
	voucherID := uuid.NewString()
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).
		Return(&domain.Voucher{
			VoucherID: voucherID,
			CompanyID: s.companyID,
			Status:    domain.Posted,
			Narration: "old",
		}, nil).Once()
	s.mockVoucherRepo.On("UpdateVoucher", s.ctx, mock.AnythingOfType("domain.Voucher")).Return(nil).Once()

	newDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	newNarration := "corrected narration"
	voucher, err := s.service.UpdateVoucher(s.ctx, s.companyID, voucherID, dto.UpdateVoucherRequest{
		VoucherDate: &newDate,
		Narration:   &newNarration,
	}, s.userID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), newDate, voucher.VoucherDate)
	assert.Equal(s.T(), newNarration, voucher.Narration)
	assert.Equal(s.T(), s.userID, voucher.LastUpdatedBy)
}

func (s *VoucherServiceTestSuite) TestUpdateVoucher_ReversedRejected() {
	voucherID := uuid.NewString()
	s.mockVoucherRepo.On("FindVoucherByID", s.ctx, voucherID).
		Return(&domain.Voucher{VoucherID: voucherID, CompanyID: s.companyID, Status: domain.Reversed}, nil).Once()

	narration := "too late"
	_, err := s.service.UpdateVoucher(s.ctx, s.companyID, voucherID, dto.UpdateVoucherRequest{Narration: &narration}, s.userID)

	assert.ErrorIs(s.T(), err, services.ErrNotPosted)
	s.mockVoucherRepo.AssertNotCalled(s.T(), "UpdateVoucher", mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestListVouchers_AttachesEntries() {
	v1 := uuid.NewString()
	v2 := uuid.NewString()
	vouchers := []domain.Voucher{
		{VoucherID: v1, CompanyID: s.companyID},
		{VoucherID: v2, CompanyID: s.companyID},
	}
	entries := map[string][]domain.LedgerEntry{
		v1: {{EntryID: uuid.NewString(), VoucherID: v1}},
		v2: {{EntryID: uuid.NewString(), VoucherID: v2}},
	}

	params := dto.ListVouchersParams{Limit: 20, IncludeEntries: true}
	s.mockVoucherRepo.On("ListVouchersByCompany", s.ctx, s.companyID, 20, (*string)(nil), false).
		Return(vouchers, "tok-next", nil).Once()
	s.mockVoucherRepo.On("FindEntriesByVoucherIDs", s.ctx, []string{v1, v2}).
		Return(entries, nil).Once()

	got, nextToken, err := s.service.ListVouchers(s.ctx, s.companyID, params)

	require.NoError(s.T(), err)
	require.Len(s.T(), got, 2)
	require.NotNil(s.T(), nextToken)
	assert.Equal(s.T(), "tok-next", *nextToken)
	assert.Len(s.T(), got[0].Entries, 1)
	assert.Len(s.T(), got[1].Entries, 1)
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
