package domain

// Company is the tenancy scope for the ledger: accounts and vouchers belong
// to exactly one company and never reference across companies.
type Company struct {
	CompanyID string `json:"companyID"` // Primary key (UUID)
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}
