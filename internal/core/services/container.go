package services

import (
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	companySvc := NewCompanyService(repos.CompanyRepo, repos.AccountRepo)
	accountSvc := NewAccountService(repos.AccountRepo, repos.VoucherRepo, companySvc)
	voucherSvc := NewVoucherService(repos.VoucherRepo, repos.AccountRepo, companySvc)

	return &portssvc.ServiceContainer{
		Company:   companySvc,
		Account:   accountSvc,
		Voucher:   voucherSvc,
		Balance:   NewBalanceService(repos.AccountRepo, repos.VoucherRepo),
		Migration: NewMigrationService(repos.AccountRepo, repos.VoucherRepo),
		Pawn:      NewPawnService(repos.AccountRepo, voucherSvc),
	}
}
