package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
)

type seedAccountDef struct {
	code        string
	name        string
	accountType domain.AccountType
	parentCode  string
	groupName   string
}

// defaultChartDefs is the standard pawn-shop chart seeded for every new
// company. Group accounts come first so parent links resolve in one pass.
var defaultChartDefs = []seedAccountDef{
	{code: domain.CodeAssetsGroup, name: "Assets", accountType: domain.Asset, groupName: "Assets"},
	{code: domain.CodeCash, name: "Cash in Hand", accountType: domain.Asset, parentCode: domain.CodeAssetsGroup, groupName: "Assets"},
	{code: domain.CodeBank, name: "Bank", accountType: domain.Asset, parentCode: domain.CodeAssetsGroup, groupName: "Assets"},
	{code: domain.CodePledgeLoans, name: "Pledge Loans", accountType: domain.Asset, parentCode: domain.CodeAssetsGroup, groupName: "Assets"},
	{code: domain.CodeForfeitedInventory, name: "Forfeited Inventory", accountType: domain.Asset, parentCode: domain.CodeAssetsGroup, groupName: "Assets"},
	{code: domain.CodeLiabilitiesGroup, name: "Liabilities", accountType: domain.Liability, groupName: "Liabilities"},
	{code: domain.CodeCustomerPayables, name: "Customer Payables", accountType: domain.Liability, parentCode: domain.CodeLiabilitiesGroup, groupName: "Liabilities"},
	{code: domain.CodeEquityGroup, name: "Equity", accountType: domain.Equity, groupName: "Equity"},
	{code: domain.CodeOwnerCapital, name: "Owner Capital", accountType: domain.Equity, parentCode: domain.CodeEquityGroup, groupName: "Equity"},
	{code: domain.CodeIncomeGroup, name: "Income", accountType: domain.Income, groupName: "Income"},
	{code: domain.CodeInterestIncome, name: "Interest Income", accountType: domain.Income, parentCode: domain.CodeIncomeGroup, groupName: "Income"},
	{code: domain.CodeAuctionSalesIncome, name: "Auction Sales Income", accountType: domain.Income, parentCode: domain.CodeIncomeGroup, groupName: "Income"},
	{code: domain.CodeExpenseGroup, name: "Expenses", accountType: domain.Expense, groupName: "Expenses"},
	{code: domain.CodeOperatingExpense, name: "Operating Expenses", accountType: domain.Expense, parentCode: domain.CodeExpenseGroup, groupName: "Expenses"},
	{code: domain.CodeAuctionLossExpense, name: "Auction Loss", accountType: domain.Expense, parentCode: domain.CodeExpenseGroup, groupName: "Expenses"},
}

// defaultChartAccounts builds the seed accounts for a new company, with
// fresh ids and resolved parent links.
func defaultChartAccounts(companyID string, creatorUserID string, now time.Time) []domain.Account {
	idByCode := make(map[string]string, len(defaultChartDefs))
	for _, def := range defaultChartDefs {
		idByCode[def.code] = uuid.NewString()
	}

	accounts := make([]domain.Account, len(defaultChartDefs))
	for i, def := range defaultChartDefs {
		var parentID string
		if def.parentCode != "" {
			parentID = idByCode[def.parentCode]
		}
		accounts[i] = domain.Account{
			AccountID:       idByCode[def.code],
			CompanyID:       companyID,
			Code:            def.code,
			Name:            def.name,
			AccountType:     def.accountType,
			ParentAccountID: parentID,
			GroupName:       def.groupName,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}
	return accounts
}
