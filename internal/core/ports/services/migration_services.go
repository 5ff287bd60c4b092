package services

import (
	"context"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
)

// MigrationSvcFacade audits migrated vouchers against the legacy batch.
// It reports violations and never mutates ledger data.
type MigrationSvcFacade interface {
	VerifyMigration(ctx context.Context, companyID string, legacy []domain.LegacyTransaction) ([]domain.MigrationViolation, error)
}
