package repositories

import (
	"context"
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherReader defines read operations for voucher data.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header by its unique identifier.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchersByCompany retrieves a cursor-paginated list of vouchers.
	// Returns the vouchers, a token for the next page, and an error.
	ListVouchersByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Voucher, *string, error)

	// FindVouchersByLegacyRefs retrieves migrated vouchers keyed by their
	// stamped legacy reference. A ref can map to more than one voucher, which
	// the migration verifier reports as a violation.
	FindVouchersByLegacyRefs(ctx context.Context, companyID string, legacyRefs []string) (map[string][]domain.Voucher, error)

	// ListUnbalancedVoucherIDs returns the ids of vouchers whose entries do
	// not sum to equal debits and credits. Empty on a healthy ledger.
	ListUnbalancedVoucherIDs(ctx context.Context, companyID string) ([]string, error)
}

// VoucherWriter defines write operations for voucher data.
type VoucherWriter interface {
	// SaveVoucher persists a voucher header and all of its entries as a
	// single atomic unit. Nothing is persisted on error.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry) error

	// SaveReversal persists a reversing voucher and marks its original as
	// reversed in one transaction. Returns an apperrors.ErrConflict match
	// when the original is not open for reversal, including when a
	// concurrent reversal claimed it first.
	SaveReversal(ctx context.Context, reversal domain.Voucher, entries []domain.LedgerEntry) error

	// UpdateVoucher updates narration/date metadata of a posted voucher.
	// Entries are immutable and not touched here.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher) error
}

// EntryReader defines read operations for ledger entry data.
type EntryReader interface {
	// FindEntriesByVoucherID retrieves all entries of a single voucher.
	FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error)

	// FindEntriesByVoucherIDs retrieves entries for multiple vouchers,
	// grouped by voucher id.
	FindEntriesByVoucherIDs(ctx context.Context, voucherIDs []string) (map[string][]domain.LedgerEntry, error)

	// ListEntriesByAccountID retrieves a cursor-paginated list of entries for
	// one account. Returns the entries, a token for the next page, and an error.
	ListEntriesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumEntriesByAccountIDs returns SUM(debits) - SUM(credits) per account
	// over the optional [from, to] entry-date range. Accounts without entries
	// in range are absent from the map.
	SumEntriesByAccountIDs(ctx context.Context, accountIDs []string, from, to *time.Time) (map[string]decimal.Decimal, error)

	// TrialBalanceRows returns per-account debit and credit totals for a
	// company as of the given date.
	TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	EntryReader
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction control.
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
