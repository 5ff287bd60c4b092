package models

// AccountType mirrors domain.AccountType at the persistence boundary.
type AccountType string

// Account maps to the accounts_master table.
type Account struct {
	AccountID       string      `json:"accountID"`
	CompanyID       string      `json:"companyID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Empty string when NULL
	GroupName       string      `json:"groupName"`
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
