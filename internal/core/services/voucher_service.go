package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	portssvc "github.com/goldloans/pawnshop_ledger/internal/core/ports/services"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
	"github.com/goldloans/pawnshop_ledger/internal/middleware"
	"github.com/goldloans/pawnshop_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrVoucherMinEntries  = errors.New("voucher must have at least two ledger entries")
	ErrVoucherMinAccounts = errors.New("voucher must affect at least two different accounts")
	ErrEntryAccountRef    = errors.New("entry references an unknown or unusable account")
	ErrNarrationMissing   = errors.New("voucher narration is required")
	ErrNotPosted          = errors.New("voucher must be posted for this operation")
	ErrAlreadyReversed    = errors.New("voucher has already been reversed")
	ErrIsReversal         = errors.New("reversing vouchers cannot be reversed")
)

// voucherService provides voucher posting, retrieval and reversal.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// CreateVoucher validates and posts a new voucher with its entries as one
// atomic unit. On any validation failure nothing is persisted.
func (s *voucherService) CreateVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.GetCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company %s: %w", companyID, err)
	}

	if len(req.Entries) < 2 {
		return nil, ErrVoucherMinEntries
	}
	if req.Narration == "" {
		return nil, ErrNarrationMissing
	}

	accountSet := make(map[string]struct{}, len(req.Entries))
	for _, e := range req.Entries {
		accountSet[e.AccountID] = struct{}{}
	}
	if len(accountSet) < 2 {
		return nil, ErrVoucherMinAccounts
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entries := make([]domain.LedgerEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(accountSet))
	for id := range accountSet {
		accountIDs = append(accountIDs, id)
	}
	for i, entryReq := range req.Entries {
		entryDate := req.VoucherDate
		if entryReq.EntryDate != nil {
			entryDate = *entryReq.EntryDate
		}
		entries[i] = domain.LedgerEntry{
			EntryID:     uuid.NewString(),
			VoucherID:   voucherID,
			AccountID:   entryReq.AccountID,
			DrCr:        entryReq.DrCr,
			Amount:      entryReq.Amount,
			Narration:   entryReq.Narration,
			EntryDate:   entryDate,
			AuditFields: audit,
		}
	}

	if err := accounting.ValidateVoucherBalance(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, err.Error())
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for voucher", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s not found", ErrEntryAccountRef, id)
		}
		if acc.CompanyID != companyID {
			return nil, fmt.Errorf("%w: account %s does not belong to company %s", ErrEntryAccountRef, id, companyID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", ErrEntryAccountRef, id)
		}
	}

	voucher := domain.Voucher{
		VoucherID:   voucherID,
		CompanyID:   companyID,
		VoucherType: req.VoucherType,
		VoucherDate: req.VoucherDate,
		Narration:   req.Narration,
		Status:      domain.Posted,
		LegacyRef:   req.LegacyRef,
		AuditFields: audit,
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher, entries); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, err
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", voucherID),
		slog.String("voucher_type", string(req.VoucherType)),
		slog.Int("entry_count", len(entries)))

	voucher.Entries = entries
	return &voucher, nil
}

// GetVoucherByID retrieves a voucher, optionally with its entries, scoped to
// the company.
func (s *voucherService) GetVoucherByID(ctx context.Context, companyID string, voucherID string, withEntries bool) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	if withEntries {
		entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch entries for voucher %s: %w", voucherID, err)
		}
		voucher.Entries = entries
	}
	return voucher, nil
}

// ListVouchers retrieves a page of the company's vouchers, optionally with
// entries attached.
func (s *voucherService) ListVouchers(ctx context.Context, companyID string, params dto.ListVouchersParams) ([]domain.Voucher, *string, error) {
	if _, err := s.companySvc.GetCompanyByID(ctx, companyID); err != nil {
		return nil, nil, fmt.Errorf("company %s: %w", companyID, err)
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchersByCompany(ctx, companyID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, nil, err
	}

	if params.IncludeEntries && len(vouchers) > 0 {
		voucherIDs := make([]string, len(vouchers))
		for i, v := range vouchers {
			voucherIDs[i] = v.VoucherID
		}
		entriesByVoucher, err := s.voucherRepo.FindEntriesByVoucherIDs(ctx, voucherIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch entries for voucher page: %w", err)
		}
		for i := range vouchers {
			vouchers[i].Entries = entriesByVoucher[vouchers[i].VoucherID]
		}
	}
	return vouchers, nextToken, nil
}

// ListAccountEntries retrieves a page of one account's ledger entries.
func (s *voucherService) ListAccountEntries(ctx context.Context, companyID string, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account.CompanyID != companyID {
		return nil, nil, apperrors.ErrNotFound
	}
	return s.voucherRepo.ListEntriesByAccountID(ctx, companyID, accountID, limit, nextToken)
}

// UpdateVoucher updates narration and date metadata of a posted voucher.
// Entries are immutable; amount corrections go through ReverseVoucher.
func (s *voucherService) UpdateVoucher(ctx context.Context, companyID string, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	voucher, err := s.GetVoucherByID(ctx, companyID, voucherID, false)
	if err != nil {
		return nil, err
	}
	if voucher.Status != domain.Posted {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrNotPosted, voucherID, voucher.Status)
	}

	if req.VoucherDate != nil {
		voucher.VoucherDate = *req.VoucherDate
	}
	if req.Narration != nil {
		if *req.Narration == "" {
			return nil, ErrNarrationMissing
		}
		voucher.Narration = *req.Narration
	}
	voucher.LastUpdatedAt = time.Now().UTC()
	voucher.LastUpdatedBy = userID

	if err := s.voucherRepo.UpdateVoucher(ctx, *voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// ReverseVoucher posts a new voucher that mirrors the original with debits
// and credits swapped, marks the original as reversed and links the two, all
// in one repository transaction. The original's entries are never modified.
func (s *voucherService) ReverseVoucher(ctx context.Context, companyID string, voucherID string, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetVoucherByID(ctx, companyID, voucherID, false)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: voucher %s is %s", ErrNotPosted, voucherID, original.Status)
	}
	if original.ReversingVoucherID != nil {
		return nil, fmt.Errorf("%w: voucher %s", ErrAlreadyReversed, voucherID)
	}
	if original.OriginalVoucherID != nil {
		return nil, fmt.Errorf("%w: voucher %s", ErrIsReversal, voucherID)
	}

	original.Entries, err = s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for voucher %s: %w", voucherID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	reversalEntries := make([]domain.LedgerEntry, len(original.Entries))
	for i, e := range original.Entries {
		flipped := domain.Credit
		if e.DrCr == domain.Credit {
			flipped = domain.Debit
		}
		reversalEntries[i] = domain.LedgerEntry{
			EntryID:     uuid.NewString(),
			VoucherID:   reversalID,
			AccountID:   e.AccountID,
			DrCr:        flipped,
			Amount:      e.Amount,
			Narration:   e.Narration,
			EntryDate:   now,
			AuditFields: audit,
		}
	}

	reversal := domain.Voucher{
		VoucherID:         reversalID,
		CompanyID:         companyID,
		VoucherType:       original.VoucherType,
		VoucherDate:       now,
		Narration:         "Reversal of voucher " + original.VoucherID + ": " + original.Narration,
		Status:            domain.Posted,
		OriginalVoucherID: &original.VoucherID,
		AuditFields:       audit,
	}

	// The repository claims the original row before posting, so a concurrent
	// reversal of the same voucher fails with a conflict and nothing lands.
	if err := s.voucherRepo.SaveReversal(ctx, reversal, reversalEntries); err != nil {
		logger.Error("Failed to save reversing voucher", slog.String("error", err.Error()), slog.String("original_voucher_id", voucherID))
		return nil, err
	}

	logger.Info("Voucher reversed", slog.String("voucher_id", voucherID), slog.String("reversal_id", reversalID))

	reversal.Entries = reversalEntries
	return &reversal, nil
}

// voucherTotal is the economic value of a balanced voucher, the debit side sum.
func voucherTotal(entries []domain.LedgerEntry) decimal.Decimal {
	debits, _ := accounting.Totals(entries)
	return debits
}
