package repositories

// RepositoryProvider bundles the repositories handed to the service container.
type RepositoryProvider struct {
	CompanyRepo CompanyRepositoryFacade
	AccountRepo AccountRepositoryFacade
	VoucherRepo VoucherRepositoryWithTx
}
