package dto

import (
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one debit or credit line of a voucher being created.
type CreateEntryRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	DrCr      domain.DrCr     `json:"drCr" binding:"required,drcr"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Narration string          `json:"narration"`
	EntryDate *time.Time      `json:"entryDate"` // Defaults to the voucher date
}

// CreateVoucherRequest defines a voucher header plus its ordered entries.
type CreateVoucherRequest struct {
	VoucherType domain.VoucherType   `json:"voucherType" binding:"required,oneof=RECEIPT PAYMENT JOURNAL CONTRA"`
	VoucherDate time.Time            `json:"voucherDate" binding:"required"`
	Narration   string               `json:"narration" binding:"required"`
	LegacyRef   *string              `json:"legacyRef"` // Set by the migration tooling only
	Entries     []CreateEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// UpdateVoucherRequest defines the mutable metadata of a posted voucher.
// Entries are immutable; corrections go through reversal.
type UpdateVoucherRequest struct {
	VoucherDate *time.Time `json:"voucherDate"`
	Narration   *string    `json:"narration"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID   string          `json:"entryID"`
	VoucherID string          `json:"voucherID"`
	AccountID string          `json:"accountID"`
	DrCr      domain.DrCr     `json:"drCr"`
	Amount    decimal.Decimal `json:"amount"`
	Narration string          `json:"narration"`
	EntryDate time.Time       `json:"entryDate"`
	CreatedAt time.Time       `json:"createdAt"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID          string               `json:"voucherID"`
	CompanyID          string               `json:"companyID"`
	VoucherType        domain.VoucherType   `json:"voucherType"`
	VoucherDate        time.Time            `json:"voucherDate"`
	Narration          string               `json:"narration"`
	Status             domain.VoucherStatus `json:"status"`
	OriginalVoucherID  *string              `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string              `json:"reversingVoucherID,omitempty"`
	LegacyRef          *string              `json:"legacyRef,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	CreatedBy          string               `json:"createdBy"`
	Entries            []EntryResponse      `json:"entries,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:   e.EntryID,
		VoucherID: e.VoucherID,
		AccountID: e.AccountID,
		DrCr:      e.DrCr,
		Amount:    e.Amount,
		Narration: e.Narration,
		EntryDate: e.EntryDate,
		CreatedAt: e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain ledger entries.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToEntryResponse(e)
	}
	return res
}

// ToVoucherResponse converts a domain.Voucher to its response DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:          v.VoucherID,
		CompanyID:          v.CompanyID,
		VoucherType:        v.VoucherType,
		VoucherDate:        v.VoucherDate,
		Narration:          v.Narration,
		Status:             v.Status,
		OriginalVoucherID:  v.OriginalVoucherID,
		ReversingVoucherID: v.ReversingVoucherID,
		LegacyRef:          v.LegacyRef,
		CreatedAt:          v.CreatedAt,
		CreatedBy:          v.CreatedBy,
	}
	if len(v.Entries) > 0 {
		resp.Entries = ToEntryResponses(v.Entries)
	}
	return resp
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals,default=false"`
	IncludeEntries   bool    `form:"includeEntries,default=false"`
}

// ListVouchersResponse wraps a page of vouchers with the next cursor token.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListEntriesParams defines query parameters for listing an account's entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the next cursor token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
