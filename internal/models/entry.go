package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry maps to the ledger_entries table.
type LedgerEntry struct {
	EntryID   string          `json:"entryID"`
	VoucherID string          `json:"voucherID"`
	AccountID string          `json:"accountID"`
	DrCr      string          `json:"drCr"`
	Amount    decimal.Decimal `json:"amount"`
	Narration string          `json:"narration"`
	EntryDate time.Time       `json:"entryDate"`
	AuditFields
}
