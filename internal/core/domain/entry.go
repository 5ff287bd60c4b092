package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DrCr is the debit/credit indicator on a ledger entry.
type DrCr string

const (
	Debit  DrCr = "D"
	Credit DrCr = "C"
)

// LedgerEntry is one debit or credit line within a voucher, tied to one account.
type LedgerEntry struct {
	EntryID   string          `json:"entryID"`   // Primary key (UUID)
	VoucherID string          `json:"voucherID"` // FK -> voucher_master.voucher_id (Not Null)
	AccountID string          `json:"accountID"` // FK -> accounts_master.account_id (Not Null)
	DrCr      DrCr            `json:"drCr"`      // D or C (Not Null)
	Amount    decimal.Decimal `json:"amount"`    // Strictly positive
	Narration string          `json:"narration"` // Nullable
	EntryDate time.Time       `json:"entryDate"` // Defaults to the voucher date
	AuditFields
}

// Validate checks the entry's own invariants: a known dr/cr flag and a
// strictly positive amount with at most two decimal places.
func (e LedgerEntry) Validate() error {
	if e.DrCr != Debit && e.DrCr != Credit {
		return fmt.Errorf("dr_cr must be %q or %q, got %q", Debit, Credit, e.DrCr)
	}
	if e.AccountID == "" {
		return fmt.Errorf("entry must reference an account")
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("entry amount must be positive, got %s", e.Amount)
	}
	if e.Amount.Exponent() < -2 {
		return fmt.Errorf("entry amount %s has more than 2 decimal places", e.Amount)
	}
	return nil
}
