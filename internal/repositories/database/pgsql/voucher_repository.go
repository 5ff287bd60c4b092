package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/apperrors"
	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	portsrepo "github.com/goldloans/pawnshop_ledger/internal/core/ports/repositories"
	"github.com/goldloans/pawnshop_ledger/internal/models"
	"github.com/goldloans/pawnshop_ledger/internal/utils/mapping"
	"github.com/goldloans/pawnshop_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxVoucherRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxVoucherRepository creates a new repository for voucher data.
// The account repository is injected so posting can lock accounts in the
// same transaction as the voucher insert.
func newPgxVoucherRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

const voucherColumns = `voucher_id, company_id, voucher_type, voucher_date, narration, status, original_voucher_id, reversing_voucher_id, legacy_ref, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, voucher_id, account_id, dr_cr, amount, narration, entry_date, created_at, created_by, last_updated_at, last_updated_by`

func scanVoucherRow(row pgx.Row) (models.Voucher, error) {
	var m models.Voucher
	var originalID, reversingID, legacyRef sql.NullString

	err := row.Scan(
		&m.VoucherID,
		&m.CompanyID,
		&m.VoucherType,
		&m.VoucherDate,
		&m.Narration,
		&m.Status,
		&originalID,
		&reversingID,
		&legacyRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Voucher{}, err
	}
	if originalID.Valid {
		m.OriginalVoucherID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingVoucherID = &reversingID.String
	}
	if legacyRef.Valid {
		m.LegacyRef = &legacyRef.String
	}
	return m, nil
}

func scanEntryRow(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.VoucherID,
		&m.AccountID,
		&m.DrCr,
		&m.Amount,
		&m.Narration,
		&m.EntryDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveVoucher persists a voucher header and all of its entries atomically.
// Referenced accounts are locked FOR SHARE for the duration of the
// transaction, which blocks concurrent deactivation; inactive accounts are
// rejected here so the check and the insert see the same account state.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	accountIDSet := make(map[string]struct{}, len(entries))
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, seen := accountIDSet[e.AccountID]; !seen {
			accountIDSet[e.AccountID] = struct{}{}
			accountIDs = append(accountIDs, e.AccountID)
		}
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForShare(ctx, tx, accountIDs)
	if err != nil {
		return err
	}
	for id, acc := range lockedAccounts {
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	if err := r.insertVoucherInTx(ctx, tx, voucher, entries); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewInternalError("failed to commit voucher "+voucher.VoucherID, err)
	}
	return nil
}

// insertVoucherInTx writes a voucher header and its entries inside an open
// transaction.
func (r *PgxVoucherRepository) insertVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.Voucher, entries []domain.LedgerEntry) error {
	modelVoucher := mapping.ToModelVoucher(voucher)
	voucherQuery := `
		INSERT INTO voucher_master (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, voucherQuery,
		modelVoucher.VoucherID,
		modelVoucher.CompanyID,
		modelVoucher.VoucherType,
		modelVoucher.VoucherDate,
		modelVoucher.Narration,
		modelVoucher.Status,
		modelVoucher.OriginalVoucherID,
		modelVoucher.ReversingVoucherID,
		modelVoucher.LegacyRef,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: voucher %s already exists", apperrors.ErrDuplicate, modelVoucher.VoucherID)
		}
		return apperrors.NewInternalError("failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, e := range entries {
		modelEntry := mapping.ToModelLedgerEntry(e)
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.VoucherID,
			modelEntry.AccountID,
			modelEntry.DrCr,
			modelEntry.Amount,
			modelEntry.Narration,
			modelEntry.EntryDate,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewInternalError("failed to execute entry batch for voucher "+modelVoucher.VoucherID, err)
	}
	return nil
}

// FindVoucherByID retrieves a voucher header by its ID.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM voucher_master
		WHERE voucher_id = $1;
	`
	m, err := scanVoucherRow(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}

	v := mapping.ToDomainVoucher(m)
	return &v, nil
}

// ListVouchersByCompany retrieves a paginated list of vouchers for a company
// using token-based pagination. Returns the vouchers, a token for the next
// page (if any), and an error.
func (r *PgxVoucherRepository) ListVouchersByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + voucherColumns + `
		FROM voucher_master
	`
	filterClause := `WHERE company_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_voucher_id IS NULL`
	}

	// Ordering must be stable; created_at breaks voucher_date ties.
	orderByClause := `ORDER BY voucher_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (voucher_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to query vouchers for company "+companyID, err)
	}
	defer rows.Close()

	modelVouchers := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanVoucherRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewInternalError("failed to scan voucher row for company "+companyID, scanErr)
		}
		modelVouchers = append(modelVouchers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewInternalError("error iterating voucher rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelVouchers
	if len(modelVouchers) > limit {
		lastVoucher := modelVouchers[limit-1]
		newToken := pagination.EncodeToken(lastVoucher.VoucherDate, lastVoucher.CreatedAt)
		nextTokenVal = &newToken
		results = modelVouchers[:limit]
	}

	domainVouchers := make([]domain.Voucher, len(results))
	for i, m := range results {
		domainVouchers[i] = mapping.ToDomainVoucher(m)
	}
	return domainVouchers, nextTokenVal, nil
}

// FindVouchersByLegacyRefs retrieves migrated vouchers grouped by their
// stamped legacy reference.
func (r *PgxVoucherRepository) FindVouchersByLegacyRefs(ctx context.Context, companyID string, legacyRefs []string) (map[string][]domain.Voucher, error) {
	if len(legacyRefs) == 0 {
		return map[string][]domain.Voucher{}, nil
	}

	query := `
		SELECT ` + voucherColumns + `
		FROM voucher_master
		WHERE company_id = $1 AND legacy_ref = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, companyID, legacyRefs)
	if err != nil {
		return nil, fmt.Errorf("failed to query vouchers by legacy refs for company %s: %w", companyID, err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Voucher, len(legacyRefs))
	for rows.Next() {
		m, scanErr := scanVoucherRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan voucher row: %w", scanErr)
		}
		if m.LegacyRef == nil {
			continue
		}
		result[*m.LegacyRef] = append(result[*m.LegacyRef], mapping.ToDomainVoucher(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher rows: %w", err)
	}
	return result, nil
}

// ListUnbalancedVoucherIDs returns the ids of vouchers whose entries do not
// sum to equal debits and credits. Empty on a healthy ledger.
func (r *PgxVoucherRepository) ListUnbalancedVoucherIDs(ctx context.Context, companyID string) ([]string, error) {
	query := `
		SELECT v.voucher_id
		FROM voucher_master v
		JOIN ledger_entries e ON e.voucher_id = v.voucher_id
		WHERE v.company_id = $1
		GROUP BY v.voucher_id
		HAVING SUM(CASE WHEN e.dr_cr = 'D' THEN e.amount ELSE 0 END)
		     != SUM(CASE WHEN e.dr_cr = 'C' THEN e.amount ELSE 0 END)
		ORDER BY v.voucher_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unbalanced vouchers for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan unbalanced voucher id: %w", scanErr)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unbalanced voucher rows: %w", err)
	}
	return ids, nil
}

// SaveReversal persists a reversing voucher and marks its original as
// reversed in one transaction. The original row is claimed first with a
// conditional update, so two concurrent reversals of the same voucher can
// never both commit; the loser matches zero rows and everything it did
// rolls back.
func (r *PgxVoucherRepository) SaveReversal(ctx context.Context, reversal domain.Voucher, entries []domain.LedgerEntry) error {
	if reversal.OriginalVoucherID == nil {
		return fmt.Errorf("%w: reversal %s names no original voucher", apperrors.ErrValidation, reversal.VoucherID)
	}
	originalID := *reversal.OriginalVoucherID

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	claimQuery := `
		UPDATE voucher_master
		SET status = $2, reversing_voucher_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE voucher_id = $1
		  AND status = $6
		  AND reversing_voucher_id IS NULL
		  AND original_voucher_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, claimQuery,
		originalID,
		string(domain.Reversed),
		reversal.VoucherID,
		reversal.LastUpdatedAt,
		reversal.LastUpdatedBy,
		string(domain.Posted),
	)
	if err != nil {
		return fmt.Errorf("failed to mark voucher %s as reversed: %w", originalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: voucher %s is not open for reversal", apperrors.ErrConflict, originalID)
	}

	accountIDSet := make(map[string]struct{}, len(entries))
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, seen := accountIDSet[e.AccountID]; !seen {
			accountIDSet[e.AccountID] = struct{}{}
			accountIDs = append(accountIDs, e.AccountID)
		}
	}
	// Same lock as posting. Inactive accounts are not rejected here: a
	// posted voucher must stay reversible even after one of its accounts
	// is deactivated.
	if _, err := r.accountRepo.FindAccountsByIDsForShare(ctx, tx, accountIDs); err != nil {
		return err
	}

	if err := r.insertVoucherInTx(ctx, tx, reversal, entries); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewInternalError("failed to commit reversal of voucher "+originalID, err)
	}
	return nil
}

// UpdateVoucher updates narration and date metadata of a posted voucher.
func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher) error {
	query := `
		UPDATE voucher_master
		SET voucher_date = $2, narration = $3, last_updated_at = $4, last_updated_by = $5
		WHERE voucher_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		voucher.VoucherID,
		voucher.VoucherDate,
		voucher.Narration,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update voucher %s: %w", voucher.VoucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntriesByVoucherID retrieves all entries of a single voucher.
func (r *PgxVoucherRepository) FindEntriesByVoucherID(ctx context.Context, voucherID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE voucher_id = $1
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	var modelEntries []models.LedgerEntry
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan entry row for voucher %s: %w", voucherID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for voucher %s: %w", voucherID, err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

// FindEntriesByVoucherIDs retrieves entries for multiple vouchers, grouped
// by voucher id.
func (r *PgxVoucherRepository) FindEntriesByVoucherIDs(ctx context.Context, voucherIDs []string) (map[string][]domain.LedgerEntry, error) {
	if len(voucherIDs) == 0 {
		return map[string][]domain.LedgerEntry{}, nil
	}

	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE voucher_id = ANY($1)
		ORDER BY voucher_id, created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, voucherIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by voucher ids: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.LedgerEntry, len(voucherIDs))
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		result[m.VoucherID] = append(result[m.VoucherID], mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return result, nil
}

// ListEntriesByAccountID retrieves a paginated list of entries for one
// account using token-based pagination.
func (r *PgxVoucherRepository) ListEntriesByAccountID(ctx context.Context, companyID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT e.entry_id, e.voucher_id, e.account_id, e.dr_cr, e.amount, e.narration, e.entry_date,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM ledger_entries e
		JOIN voucher_master v ON e.voucher_id = v.voucher_id
		WHERE e.account_id = $1 AND v.company_id = $2
	`
	orderByClause := `ORDER BY e.entry_date DESC, e.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, companyID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (e.entry_date, e.created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewInternalError("failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewInternalError("failed to scan entry row for account "+accountID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewInternalError("error iterating entry rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}

// SumEntriesByAccountIDs returns SUM(debits) - SUM(credits) per account over
// the optional [from, to] entry-date range. Accounts with no entries in
// range are absent from the map.
func (r *PgxVoucherRepository) SumEntriesByAccountIDs(ctx context.Context, accountIDs []string, from, to *time.Time) (map[string]decimal.Decimal, error) {
	if len(accountIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := `
		SELECT account_id,
		       SUM(CASE WHEN dr_cr = 'D' THEN amount ELSE -amount END)
		FROM ledger_entries
		WHERE account_id = ANY($1)
	`
	args := []interface{}{accountIDs}
	if from != nil {
		args = append(args, *from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY account_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries by account: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal, len(accountIDs))
	for rows.Next() {
		var accountID string
		var sum decimal.Decimal
		if scanErr := rows.Scan(&accountID, &sum); scanErr != nil {
			return nil, fmt.Errorf("failed to scan entry sum row: %w", scanErr)
		}
		result[accountID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry sum rows: %w", err)
	}
	return result, nil
}

// TrialBalanceRows returns per-account debit and credit totals for a company
// as of the given date. Accounts without entries appear with zero totals.
func (r *PgxVoucherRepository) TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.account_code, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN e.dr_cr = 'D' THEN e.amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN e.dr_cr = 'C' THEN e.amount ELSE 0 END), 0)
		FROM accounts_master a
		LEFT JOIN ledger_entries e ON e.account_id = a.account_id AND e.entry_date <= $2
		WHERE a.company_id = $1
		GROUP BY a.account_id, a.account_code, a.name, a.account_type
		ORDER BY a.account_code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if scanErr := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&row.AccountType,
			&row.DebitTotal,
			&row.CreditTotal,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", scanErr)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}
