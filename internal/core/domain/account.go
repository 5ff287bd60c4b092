package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in a company's chart of accounts. Group accounts carry
// no entries of their own; their balance is the roll-up of descendant leaves.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary key (UUID)
	CompanyID       string      `json:"companyID"`       // FK -> companies.company_id (Not Null)
	Code            string      `json:"code"`            // Unique per company
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable self-reference
	GroupName       string      `json:"groupName"`       // Legacy grouping label, nullable
	Description     string      `json:"description"`     // Nullable
	IsActive        bool        `json:"isActive"`        // Soft-deactivation flag
	AuditFields
}

// IsDebitNatural reports whether debits increase this account's balance.
func (t AccountType) IsDebitNatural() bool {
	return t == Asset || t == Expense
}
