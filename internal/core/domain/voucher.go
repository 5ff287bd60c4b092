package domain

import "time"

// VoucherType classifies the business shape of a voucher.
type VoucherType string

const (
	Receipt VoucherType = "RECEIPT"
	Payment VoucherType = "PAYMENT"
	Journal VoucherType = "JOURNAL"
	Contra  VoucherType = "CONTRA"
)

// VoucherStatus indicates the state of a voucher.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// Voucher represents a single, balanced financial event composed of ledger
// entries. Posted vouchers are immutable; corrections go through reversing
// vouchers linked via OriginalVoucherID/ReversingVoucherID.
type Voucher struct {
	VoucherID          string        `json:"voucherID"`   // Primary key (UUID)
	CompanyID          string        `json:"companyID"`   // FK -> companies.company_id (Not Null)
	VoucherType        VoucherType   `json:"voucherType"` // RECEIPT, PAYMENT, JOURNAL, CONTRA
	VoucherDate        time.Time     `json:"voucherDate"` // Date the event occurred
	Narration          string        `json:"narration"`   // Nullable description
	Status             VoucherStatus `json:"status"`      // Default: POSTED
	OriginalVoucherID  *string       `json:"originalVoucherID,omitempty"`  // Set on reversing vouchers
	ReversingVoucherID *string       `json:"reversingVoucherID,omitempty"` // Set on reversed vouchers
	LegacyRef          *string       `json:"legacyRef,omitempty"`          // Source transaction id for migrated vouchers
	AuditFields

	// Entries are populated on demand, not on every read.
	Entries []LedgerEntry `json:"entries,omitempty"`
}
