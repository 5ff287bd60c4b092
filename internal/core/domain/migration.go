package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyTransaction is one row of the pre-migration flat transaction table.
// Each legacy row becomes one voucher holding exactly one debit/credit pair.
type LegacyTransaction struct {
	LegacyID          string          `json:"legacyID"`
	DebitAccountCode  string          `json:"debitAccountCode"`
	CreditAccountCode string          `json:"creditAccountCode"`
	Amount            decimal.Decimal `json:"amount"`
	TxnDate           time.Time       `json:"txnDate"`
	Narration         string          `json:"narration"`
}

// ViolationCode classifies a migration consistency failure.
type ViolationCode string

const (
	ViolationMissingVoucher       ViolationCode = "MISSING_VOUCHER"
	ViolationDuplicateVoucher     ViolationCode = "DUPLICATE_VOUCHER"
	ViolationEntryMismatch        ViolationCode = "ENTRY_MISMATCH"
	ViolationUnbalancedVoucher    ViolationCode = "UNBALANCED_VOUCHER"
	ViolationDuplicateAccountCode ViolationCode = "DUPLICATE_ACCOUNT_CODE"
	ViolationTotalsMismatch       ViolationCode = "TOTALS_MISMATCH"
)

// MigrationViolation is one reported inconsistency between the legacy batch
// and the migrated vouchers. Violations are reported, never auto-corrected.
type MigrationViolation struct {
	Code      ViolationCode `json:"code"`
	LegacyID  string        `json:"legacyID,omitempty"`
	VoucherID string        `json:"voucherID,omitempty"`
	Detail    string        `json:"detail"`
}
