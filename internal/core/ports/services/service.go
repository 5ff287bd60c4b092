package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Company   CompanySvcFacade
	Account   AccountSvcFacade
	Voucher   VoucherSvcFacade
	Balance   BalanceSvcFacade
	Migration MigrationSvcFacade
	Pawn      PawnSvcFacade
}
