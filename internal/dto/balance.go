package dto

import (
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceQueryParams defines query parameters for an account balance query.
// Rollup is opt-in; without it the balance covers the account's own entries.
type BalanceQueryParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Rollup bool       `form:"rollup"`
}

// AccountBalanceResponse is the signed balance of one account, optionally
// rolled up over its subtree.
type AccountBalanceResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
	RolledUp    bool               `json:"rolledUp"`
	From        *time.Time         `json:"from,omitempty"`
	To          *time.Time         `json:"to,omitempty"`
}

// TrialBalanceParams defines query parameters for the trial balance report.
type TrialBalanceParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// TrialBalanceRowResponse is one account line of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	DebitTotal  decimal.Decimal    `json:"debitTotal"`
	CreditTotal decimal.Decimal    `json:"creditTotal"`
}

// TrialBalanceResponse is the full trial balance report. TotalDebits and
// TotalCredits are equal on a consistent ledger.
type TrialBalanceResponse struct {
	AsOf         time.Time                 `json:"asOf"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
}

// ToTrialBalanceRowResponse converts a domain trial balance row.
func ToTrialBalanceRowResponse(r domain.TrialBalanceRow) TrialBalanceRowResponse {
	return TrialBalanceRowResponse{
		AccountID:   r.AccountID,
		Code:        r.Code,
		Name:        r.Name,
		AccountType: r.AccountType,
		DebitTotal:  r.DebitTotal,
		CreditTotal: r.CreditTotal,
	}
}
