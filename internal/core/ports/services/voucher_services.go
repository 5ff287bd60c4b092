package services

import (
	"context"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/goldloans/pawnshop_ledger/internal/dto"
)

// VoucherSvcFacade defines voucher posting and retrieval operations.
type VoucherSvcFacade interface {
	CreateVoucher(ctx context.Context, companyID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)
	GetVoucherByID(ctx context.Context, companyID string, voucherID string, withEntries bool) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, companyID string, params dto.ListVouchersParams) ([]domain.Voucher, *string, error)
	ListAccountEntries(ctx context.Context, companyID string, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
	UpdateVoucher(ctx context.Context, companyID string, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)
	ReverseVoucher(ctx context.Context, companyID string, voucherID string, creatorUserID string) (*domain.Voucher, error)
}

// PawnSvcFacade expands pawn-shop business events into balanced vouchers.
type PawnSvcFacade interface {
	PostPawnEvent(ctx context.Context, companyID string, req dto.PostPawnEventRequest, creatorUserID string) (*domain.Voucher, error)
}
