package mapping

import (
	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/models"
)

// ToModelVoucher converts a domain voucher header to its DB model.
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:          d.VoucherID,
		CompanyID:          d.CompanyID,
		VoucherType:        string(d.VoucherType),
		VoucherDate:        d.VoucherDate,
		Narration:          d.Narration,
		Status:             string(d.Status),
		OriginalVoucherID:  d.OriginalVoucherID,
		ReversingVoucherID: d.ReversingVoucherID,
		LegacyRef:          d.LegacyRef,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a DB voucher model to its domain representation.
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:          m.VoucherID,
		CompanyID:          m.CompanyID,
		VoucherType:        domain.VoucherType(m.VoucherType),
		VoucherDate:        m.VoucherDate,
		Narration:          m.Narration,
		Status:             domain.VoucherStatus(m.Status),
		OriginalVoucherID:  m.OriginalVoucherID,
		ReversingVoucherID: m.ReversingVoucherID,
		LegacyRef:          m.LegacyRef,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain ledger entry to its DB model.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		VoucherID:   d.VoucherID,
		AccountID:   d.AccountID,
		DrCr:        string(d.DrCr),
		Amount:      d.Amount,
		Narration:   d.Narration,
		EntryDate:   d.EntryDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a DB ledger entry model to its domain representation.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		VoucherID:   m.VoucherID,
		AccountID:   m.AccountID,
		DrCr:        domain.DrCr(m.DrCr),
		Amount:      m.Amount,
		Narration:   m.Narration,
		EntryDate:   m.EntryDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of ledger entry models.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
