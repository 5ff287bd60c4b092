package dto

import (
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LegacyTransactionRequest is one row of the legacy flat transaction table
// submitted for verification against the migrated vouchers.
type LegacyTransactionRequest struct {
	LegacyID          string          `json:"legacyID" binding:"required"`
	DebitAccountCode  string          `json:"debitAccountCode" binding:"required,accountcode"`
	CreditAccountCode string          `json:"creditAccountCode" binding:"required,accountcode"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	TxnDate           time.Time       `json:"txnDate" binding:"required"`
	Narration         string          `json:"narration"`
}

// VerifyMigrationRequest is the legacy batch to audit.
type VerifyMigrationRequest struct {
	Transactions []LegacyTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// ToDomainLegacyTransactions converts the request batch to domain objects.
func ToDomainLegacyTransactions(reqs []LegacyTransactionRequest) []domain.LegacyTransaction {
	out := make([]domain.LegacyTransaction, len(reqs))
	for i, r := range reqs {
		out[i] = domain.LegacyTransaction{
			LegacyID:          r.LegacyID,
			DebitAccountCode:  r.DebitAccountCode,
			CreditAccountCode: r.CreditAccountCode,
			Amount:            r.Amount,
			TxnDate:           r.TxnDate,
			Narration:         r.Narration,
		}
	}
	return out
}

// MigrationViolationResponse is one reported inconsistency.
type MigrationViolationResponse struct {
	Code      domain.ViolationCode `json:"code"`
	LegacyID  string               `json:"legacyID,omitempty"`
	VoucherID string               `json:"voucherID,omitempty"`
	Detail    string               `json:"detail"`
}

// VerifyMigrationResponse wraps the violation report. An empty Violations
// slice means the migration is consistent.
type VerifyMigrationResponse struct {
	Checked    int                          `json:"checked"`
	Violations []MigrationViolationResponse `json:"violations"`
}

// ToMigrationViolationResponses converts domain violations for the wire.
func ToMigrationViolationResponses(vs []domain.MigrationViolation) []MigrationViolationResponse {
	out := make([]MigrationViolationResponse, len(vs))
	for i, v := range vs {
		out[i] = MigrationViolationResponse{
			Code:      v.Code,
			LegacyID:  v.LegacyID,
			VoucherID: v.VoucherID,
			Detail:    v.Detail,
		}
	}
	return out
}
