package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/core/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
)

func TestCreateCompany_SeedsChartInSameTx(t *testing.T) {
	mockCompanyRepo := new(MockCompanyRepository)
	mockAccountRepo := new(MockAccountRepository)
	svc := services.NewCompanyService(mockCompanyRepo, mockAccountRepo)
	ctx := context.Background()
	userID := uuid.NewString()

	mockCompanyRepo.On("Begin", ctx).Return(nil, nil).Once()
	mockCompanyRepo.On("SaveCompanyInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Company")).Return(nil).Once()

	var seeded []domain.Account
	mockAccountRepo.On("SaveAccountsInTx", ctx, mock.Anything, mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			seeded = args.Get(2).([]domain.Account)
		}).
		Return(nil).Once()
	mockCompanyRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	mockCompanyRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	company, err := svc.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Sharma Gold Loans"}, userID)

	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "Sharma Gold Loans", company.Name)
	assert.True(t, company.IsActive)

	require.NotEmpty(t, seeded)
	for _, acc := range seeded {
		assert.Equal(t, company.CompanyID, acc.CompanyID)
	}
	mockCompanyRepo.AssertExpectations(t)
	mockAccountRepo.AssertExpectations(t)
}

func TestCreateCompany_SeedFailureAborts(t *testing.T) {
	mockCompanyRepo := new(MockCompanyRepository)
	mockAccountRepo := new(MockAccountRepository)
	svc := services.NewCompanyService(mockCompanyRepo, mockAccountRepo)
	ctx := context.Background()

	mockCompanyRepo.On("Begin", ctx).Return(nil, nil).Once()
	mockCompanyRepo.On("SaveCompanyInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Company")).Return(nil).Once()
	mockAccountRepo.On("SaveAccountsInTx", ctx, mock.Anything, mock.AnythingOfType("[]domain.Account")).
		Return(errors.New("insert failed")).Once()
	mockCompanyRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	company, err := svc.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Sharma Gold Loans"}, uuid.NewString())

	assert.Nil(t, company)
	assert.Error(t, err)
	mockCompanyRepo.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestGetCompanyByID_DeactivatedForbidden(t *testing.T) {
	mockCompanyRepo := new(MockCompanyRepository)
	mockAccountRepo := new(MockAccountRepository)
	svc := services.NewCompanyService(mockCompanyRepo, mockAccountRepo)
	ctx := context.Background()
	companyID := uuid.NewString()

	mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID, Name: "Closed Shop", IsActive: false}, nil).Once()

	company, err := svc.GetCompanyByID(ctx, companyID)

	assert.Nil(t, company)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
