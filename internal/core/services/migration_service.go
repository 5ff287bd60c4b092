package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// migrationService audits migrated vouchers against the legacy flat
// transaction table. It only ever reports; repairs are a human decision.
type migrationService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryWithTx
}

// NewMigrationService creates a new MigrationService.
func NewMigrationService(accountRepo portsrepo.AccountRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryWithTx) portssvc.MigrationSvcFacade {
	return &migrationService{
		accountRepo: accountRepo,
		voucherRepo: voucherRepo,
	}
}

var _ portssvc.MigrationSvcFacade = (*migrationService)(nil)

// VerifyMigration checks a company's migrated ledger against the legacy
// batch and returns every violation found:
//
//   - legacy rows with no matching voucher, or more than one
//   - matched vouchers whose entries do not mirror the legacy row
//   - vouchers whose entries do not balance
//   - account codes used by more than one account
//   - a grand-total mismatch between the legacy batch and its vouchers
func (s *migrationService) VerifyMigration(ctx context.Context, companyID string, legacy []domain.LegacyTransaction) ([]domain.MigrationViolation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	violations := make([]domain.MigrationViolation, 0)

	// Duplicate account codes break code-based matching, so report them first.
	dupCodes, err := s.accountRepo.FindDuplicateAccountCodes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate account codes: %w", err)
	}
	codes := make([]string, 0, len(dupCodes))
	for code := range dupCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		violations = append(violations, domain.MigrationViolation{
			Code:   domain.ViolationDuplicateAccountCode,
			Detail: fmt.Sprintf("account code %s is used by accounts %s", code, strings.Join(dupCodes[code], ", ")),
		})
	}

	legacyRefs := make([]string, len(legacy))
	for i, txn := range legacy {
		legacyRefs[i] = txn.LegacyID
	}
	vouchersByRef, err := s.voucherRepo.FindVouchersByLegacyRefs(ctx, companyID, legacyRefs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch migrated vouchers: %w", err)
	}

	// Entries for every uniquely matched voucher, fetched in one round trip.
	matchedVoucherIDs := make([]string, 0, len(legacy))
	for _, vouchers := range vouchersByRef {
		if len(vouchers) == 1 {
			matchedVoucherIDs = append(matchedVoucherIDs, vouchers[0].VoucherID)
		}
	}
	entriesByVoucher, err := s.voucherRepo.FindEntriesByVoucherIDs(ctx, matchedVoucherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch voucher entries: %w", err)
	}

	// Resolve the account codes the legacy rows reference.
	codeSet := make(map[string]struct{}, len(legacy)*2)
	for _, txn := range legacy {
		codeSet[txn.DebitAccountCode] = struct{}{}
		codeSet[txn.CreditAccountCode] = struct{}{}
	}
	legacyCodes := make([]string, 0, len(codeSet))
	for code := range codeSet {
		legacyCodes = append(legacyCodes, code)
	}
	accountsByCode, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, legacyCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve legacy account codes: %w", err)
	}

	legacyTotal := decimal.Zero
	voucherTotalSum := decimal.Zero
	for _, txn := range legacy {
		legacyTotal = legacyTotal.Add(txn.Amount)

		vouchers := vouchersByRef[txn.LegacyID]
		switch {
		case len(vouchers) == 0:
			violations = append(violations, domain.MigrationViolation{
				Code:     domain.ViolationMissingVoucher,
				LegacyID: txn.LegacyID,
				Detail:   fmt.Sprintf("no voucher carries legacy ref %s", txn.LegacyID),
			})
			continue
		case len(vouchers) > 1:
			ids := make([]string, len(vouchers))
			for i, v := range vouchers {
				ids[i] = v.VoucherID
			}
			sort.Strings(ids)
			violations = append(violations, domain.MigrationViolation{
				Code:     domain.ViolationDuplicateVoucher,
				LegacyID: txn.LegacyID,
				Detail:   fmt.Sprintf("legacy ref %s maps to vouchers %s", txn.LegacyID, strings.Join(ids, ", ")),
			})
			continue
		}

		voucher := vouchers[0]
		entries := entriesByVoucher[voucher.VoucherID]
		voucherTotalSum = voucherTotalSum.Add(voucherTotal(entries))

		if detail := s.matchEntries(txn, entries, accountsByCode); detail != "" {
			violations = append(violations, domain.MigrationViolation{
				Code:      domain.ViolationEntryMismatch,
				LegacyID:  txn.LegacyID,
				VoucherID: voucher.VoucherID,
				Detail:    detail,
			})
		}
	}

	unbalancedIDs, err := s.voucherRepo.ListUnbalancedVoucherIDs(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for unbalanced vouchers: %w", err)
	}
	for _, id := range unbalancedIDs {
		violations = append(violations, domain.MigrationViolation{
			Code:      domain.ViolationUnbalancedVoucher,
			VoucherID: id,
			Detail:    fmt.Sprintf("voucher %s has unequal debit and credit sums", id),
		})
	}

	if !legacyTotal.Equal(voucherTotalSum) {
		violations = append(violations, domain.MigrationViolation{
			Code:   domain.ViolationTotalsMismatch,
			Detail: fmt.Sprintf("legacy batch total %s != migrated voucher total %s", legacyTotal, voucherTotalSum),
		})
	}

	logger.Info("Migration verification finished",
		slog.String("company_id", companyID),
		slog.Int("legacy_rows", len(legacy)),
		slog.Int("violations", len(violations)))
	return violations, nil
}

// matchEntries checks that a migrated voucher's entries mirror the legacy
// row: exactly one debit and one credit, both for the legacy amount, hitting
// the accounts the legacy codes resolve to. Returns an empty string when
// everything matches.
func (s *migrationService) matchEntries(txn domain.LegacyTransaction, entries []domain.LedgerEntry, accountsByCode map[string]domain.Account) string {
	if len(entries) != 2 {
		return fmt.Sprintf("expected 2 entries, found %d", len(entries))
	}

	var debit, credit *domain.LedgerEntry
	for i := range entries {
		switch entries[i].DrCr {
		case domain.Debit:
			debit = &entries[i]
		case domain.Credit:
			credit = &entries[i]
		}
	}
	if debit == nil || credit == nil {
		return "voucher does not hold one debit and one credit entry"
	}

	if !debit.Amount.Equal(txn.Amount) || !credit.Amount.Equal(txn.Amount) {
		return fmt.Sprintf("entry amounts %s/%s do not match legacy amount %s", debit.Amount, credit.Amount, txn.Amount)
	}

	debitAccount, ok := accountsByCode[txn.DebitAccountCode]
	if !ok {
		return fmt.Sprintf("legacy debit account code %s does not exist", txn.DebitAccountCode)
	}
	creditAccount, ok := accountsByCode[txn.CreditAccountCode]
	if !ok {
		return fmt.Sprintf("legacy credit account code %s does not exist", txn.CreditAccountCode)
	}
	if debit.AccountID != debitAccount.AccountID {
		return fmt.Sprintf("debit entry hits account %s, expected code %s", debit.AccountID, txn.DebitAccountCode)
	}
	if credit.AccountID != creditAccount.AccountID {
		return fmt.Sprintf("credit entry hits account %s, expected code %s", credit.AccountID, txn.CreditAccountCode)
	}
	return ""
}
