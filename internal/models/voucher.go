package models

import "time"

// Voucher maps to the voucher_master table.
type Voucher struct {
	VoucherID          string    `json:"voucherID"`
	CompanyID          string    `json:"companyID"`
	VoucherType        string    `json:"voucherType"`
	VoucherDate        time.Time `json:"voucherDate"`
	Narration          string    `json:"narration"`
	Status             string    `json:"status"`
	OriginalVoucherID  *string   `json:"originalVoucherID"`
	ReversingVoucherID *string   `json:"reversingVoucherID"`
	LegacyRef          *string   `json:"legacyRef"`
	AuditFields
}
