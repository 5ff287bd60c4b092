package accounting

import (
	"fmt"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the account-type sign convention to a ledger entry.
// This is the single place the convention lives; services and repositories
// both route through it.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func SignedAmount(entry domain.LedgerEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signed := entry.Amount
	isDebit := entry.DrCr == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signed = signed.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signed = signed.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, entry.AccountID)
	}
	return signed, nil
}

// SignBalance converts a raw debit-minus-credit sum into the conventional
// signed balance for the given account type.
func SignBalance(debitMinusCredit decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	if accountType.IsDebitNatural() {
		return debitMinusCredit
	}
	return debitMinusCredit.Neg()
}

// Totals sums the debit and credit sides of a set of entries.
func Totals(entries []domain.LedgerEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.DrCr == domain.Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits
}

// ValidateVoucherBalance checks the double-entry invariants for a voucher's
// entries: at least two lines, every line valid on its own, and
// sum(debits) == sum(credits).
func ValidateVoucherBalance(entries []domain.LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("voucher must have at least two ledger entries")
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	debits, credits := Totals(entries)
	if !debits.Equal(credits) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}
