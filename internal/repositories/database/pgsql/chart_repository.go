package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	"github.com/plancompta/ohada_chart_app/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the scan helpers
// serve the plain and the transactional paths alike.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxChartRepository struct {
	BaseRepository
}

// newPgxChartRepository creates a new repository for chart-of-accounts data.
func newPgxChartRepository(pool *pgxpool.Pool) portsrepo.ChartRepositoryFacade {
	return &PgxChartRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxChartRepository implements portsrepo.ChartRepositoryFacade
var _ portsrepo.ChartRepositoryFacade = (*PgxChartRepository)(nil)

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:             m.AccountID,
		TenantID:              m.TenantID,
		Code:                  m.Code,
		Name:                  m.Name,
		Description:           m.Description,
		ClassID:               m.ClassID,
		CategoryID:            m.CategoryID,
		ParentAccountID:       m.ParentAccountID,
		Level:                 m.Level,
		AccountType:           domain.AccountType(m.AccountType),
		Category:              domain.ClassificationCategory(m.Category),
		RefFinancialStatement: m.RefFinancialStatement,
		NormalBalance:         domain.NormalBalance(m.NormalBalance),
		IsActive:              m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toDomainClass(m models.AccountClass) domain.AccountClass {
	return domain.AccountClass{
		ClassID:     m.ClassID,
		TenantID:    m.TenantID,
		Number:      m.Number,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toDomainCategory(m models.AccountCategory) domain.AccountCategory {
	return domain.AccountCategory{
		CategoryID:  m.CategoryID,
		TenantID:    m.TenantID,
		ClassID:     m.ClassID,
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// nullable maps an empty string to a NULL parameter for optional FK columns.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

const accountColumns = `account_id, tenant_id, code, name, description, class_id, category_id, parent_account_id, level, account_type, classification_category, ref_financial_statement, normal_balance, is_active, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	var categoryID, parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.ClassID,
		&categoryID,
		&parentID,
		&m.Level,
		&m.AccountType,
		&m.Category,
		&m.RefFinancialStatement,
		&m.NormalBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}
	m.CategoryID = categoryID.String
	m.ParentAccountID = parentID.String
	account := toDomainAccount(m)
	return &account, nil
}

func queryAccounts(ctx context.Context, q querier, filterQuery string, args ...any) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ` + filterQuery
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// FindClassByNumber retrieves an account class by its OHADA number.
func (r *PgxChartRepository) FindClassByNumber(ctx context.Context, tenantID string, number int) (*domain.AccountClass, error) {
	query := `
		SELECT class_id, tenant_id, number, name, description, created_at, last_updated_at
		FROM account_classes
		WHERE tenant_id = $1 AND number = $2;
	`
	return scanClass(r.Pool.QueryRow(ctx, query, tenantID, number))
}

func scanClass(row pgx.Row) (*domain.AccountClass, error) {
	var m models.AccountClass
	err := row.Scan(&m.ClassID, &m.TenantID, &m.Number, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan class row: %w", err)
	}
	class := toDomainClass(m)
	return &class, nil
}

// ListClasses retrieves all account classes of a tenant ordered by number.
func (r *PgxChartRepository) ListClasses(ctx context.Context, tenantID string) ([]domain.AccountClass, error) {
	query := `
		SELECT class_id, tenant_id, number, name, description, created_at, last_updated_at
		FROM account_classes
		WHERE tenant_id = $1
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account classes: %w", err)
	}
	defer rows.Close()

	classes := []domain.AccountClass{}
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read class rows: %w", err)
	}
	return classes, nil
}

// FindCategoryByCode retrieves a category by its two-digit code.
func (r *PgxChartRepository) FindCategoryByCode(ctx context.Context, tenantID string, code string) (*domain.AccountCategory, error) {
	query := `
		SELECT category_id, tenant_id, class_id, code, name, description, created_at, last_updated_at
		FROM account_categories
		WHERE tenant_id = $1 AND code = $2;
	`
	return scanCategory(r.Pool.QueryRow(ctx, query, tenantID, code))
}

func scanCategory(row pgx.Row) (*domain.AccountCategory, error) {
	var m models.AccountCategory
	err := row.Scan(&m.CategoryID, &m.TenantID, &m.ClassID, &m.Code, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan category row: %w", err)
	}
	category := toDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves categories, optionally restricted to one class.
func (r *PgxChartRepository) ListCategories(ctx context.Context, tenantID string, classID string) ([]domain.AccountCategory, error) {
	query := `
		SELECT category_id, tenant_id, class_id, code, name, description, created_at, last_updated_at
		FROM account_categories
		WHERE tenant_id = $1
	`
	args := []any{tenantID}
	if classID != "" {
		query += ` AND class_id = $2`
		args = append(args, classID)
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.AccountCategory{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category rows: %w", err)
	}
	return categories, nil
}

// FindAccountByID retrieves an account by its unique identifier.
func (r *PgxChartRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	return scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
}

// FindAccountByCode retrieves an account by its natural key (tenant, code).
func (r *PgxChartRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	return scanAccount(r.Pool.QueryRow(ctx, query, tenantID, code))
}

// FindFirstAccountWithPrefix retrieves the lowest-code account under a prefix.
func (r *PgxChartRepository) FindFirstAccountWithPrefix(ctx context.Context, tenantID string, prefix string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code LIKE $2 || '%' ORDER BY code LIMIT 1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, tenantID, prefix))
}

// ListAccounts retrieves a filtered, paginated account list ordered by code.
func (r *PgxChartRepository) ListAccounts(ctx context.Context, tenantID string, filter portsrepo.AccountFilter, limit int, offset int) ([]domain.Account, error) {
	query := `WHERE tenant_id = $1`
	args := []any{tenantID}

	addArg := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.ClassID != "" {
		addArg(` AND class_id = $%d`, filter.ClassID)
	}
	if filter.CategoryID != "" {
		addArg(` AND category_id = $%d`, filter.CategoryID)
	}
	if filter.AccountType != "" {
		addArg(` AND account_type = $%d`, string(filter.AccountType))
	}
	switch filter.ParentID {
	case "":
	case "null":
		query += ` AND parent_account_id IS NULL`
	default:
		addArg(` AND parent_account_id = $%d`, filter.ParentID)
	}
	if filter.IsActive != nil {
		addArg(` AND is_active = $%d`, *filter.IsActive)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (code ILIKE $%d OR name ILIKE $%d OR description ILIKE $%d)`, n, n, n)
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY code LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return queryAccounts(ctx, r.Pool, query, args...)
}

// SaveAccount persists a new account.
func (r *PgxChartRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insertAccount(ctx, r.Pool, account)
}

// UpdateAccount updates an existing account's details.
func (r *PgxChartRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return updateAccount(ctx, r.Pool, account)
}

// DeactivateAccount marks an account as inactive.
func (r *PgxChartRepository) DeactivateAccount(ctx context.Context, tenantID string, accountID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, accountID, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertAccount(ctx context.Context, q querier, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := q.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Code,
		account.Name,
		account.Description,
		account.ClassID,
		nullable(account.CategoryID),
		nullable(account.ParentAccountID),
		account.Level,
		string(account.AccountType),
		string(account.Category),
		account.RefFinancialStatement,
		string(account.NormalBalance),
		account.IsActive,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", account.Code, err)
	}
	return nil
}

func updateAccount(ctx context.Context, q querier, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, class_id = $5, category_id = $6,
		    parent_account_id = $7, level = $8, account_type = $9,
		    classification_category = $10, ref_financial_statement = $11,
		    normal_balance = $12, is_active = $13, last_updated_at = $14
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := q.Exec(ctx, query,
		account.TenantID,
		account.AccountID,
		account.Name,
		account.Description,
		account.ClassID,
		nullable(account.CategoryID),
		nullable(account.ParentAccountID),
		account.Level,
		string(account.AccountType),
		string(account.Category),
		account.RefFinancialStatement,
		string(account.NormalBalance),
		account.IsActive,
		account.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetOrCreateClassTx returns the class with the given (tenant, number),
// inserting it when absent. A concurrent insert surfaces as a unique violation
// and is re-read, so the call is race-safe within the transaction.
func (r *PgxChartRepository) GetOrCreateClassTx(ctx context.Context, tx pgx.Tx, class domain.AccountClass) (*domain.AccountClass, bool, error) {
	selectQuery := `
		SELECT class_id, tenant_id, number, name, description, created_at, last_updated_at
		FROM account_classes
		WHERE tenant_id = $1 AND number = $2;
	`
	existing, err := scanClass(tx.QueryRow(ctx, selectQuery, class.TenantID, class.Number))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	insertQuery := `
		INSERT INTO account_classes (class_id, tenant_id, number, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		class.ClassID,
		class.TenantID,
		class.Number,
		class.Name,
		class.Description,
		class.CreatedAt,
		class.LastUpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create class %d: %w", class.Number, err)
	}
	return &class, true, nil
}

// GetOrCreateCategoryTx returns the category with the given (tenant, code),
// inserting it when absent.
func (r *PgxChartRepository) GetOrCreateCategoryTx(ctx context.Context, tx pgx.Tx, category domain.AccountCategory) (*domain.AccountCategory, bool, error) {
	selectQuery := `
		SELECT category_id, tenant_id, class_id, code, name, description, created_at, last_updated_at
		FROM account_categories
		WHERE tenant_id = $1 AND code = $2;
	`
	existing, err := scanCategory(tx.QueryRow(ctx, selectQuery, category.TenantID, category.Code))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	insertQuery := `
		INSERT INTO account_categories (category_id, tenant_id, class_id, code, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		category.CategoryID,
		category.TenantID,
		category.ClassID,
		category.Code,
		category.Name,
		category.Description,
		category.CreatedAt,
		category.LastUpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create category %s: %w", category.Code, err)
	}
	return &category, true, nil
}

// FindAccountByCodeTx retrieves an account by (tenant, code) within the transaction.
func (r *PgxChartRepository) FindAccountByCodeTx(ctx context.Context, tx pgx.Tx, tenantID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	return scanAccount(tx.QueryRow(ctx, query, tenantID, code))
}

// FindAccountByNormalizedCodeTx retrieves the account whose zero-padded
// 8-digit code equals the given normalized code.
func (r *PgxChartRepository) FindAccountByNormalizedCodeTx(ctx context.Context, tx pgx.Tx, tenantID string, paddedCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND rpad(code, 8, '0') = $2 ORDER BY code LIMIT 1;`
	return scanAccount(tx.QueryRow(ctx, query, tenantID, paddedCode))
}

// SaveAccountTx inserts a new account within the transaction.
func (r *PgxChartRepository) SaveAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	return insertAccount(ctx, tx, account)
}

// UpdateAccountTx updates all fields of an existing account within the transaction.
func (r *PgxChartRepository) UpdateAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	return updateAccount(ctx, tx, account)
}

// SetAccountParentTx links an account to its parent within the transaction.
func (r *PgxChartRepository) SetAccountParentTx(ctx context.Context, tx pgx.Tx, tenantID string, accountID string, parentAccountID string) error {
	query := `
		UPDATE accounts
		SET parent_account_id = $3
		WHERE tenant_id = $1 AND account_id = $2;
	`
	tag, err := tx.Exec(ctx, query, tenantID, accountID, nullable(parentAccountID))
	if err != nil {
		return fmt.Errorf("failed to set parent of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// PurgeChartTx hard-deletes all accounts, categories and classes of a tenant.
// Children go first so the FK constraints never fire.
func (r *PgxChartRepository) PurgeChartTx(ctx context.Context, tx pgx.Tx, tenantID string) (portsrepo.PurgeCounts, error) {
	var counts portsrepo.PurgeCounts

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE tenant_id = $1;`, tenantID)
	if err != nil {
		return counts, fmt.Errorf("failed to purge accounts: %w", err)
	}
	counts.Accounts = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM account_categories WHERE tenant_id = $1;`, tenantID)
	if err != nil {
		return counts, fmt.Errorf("failed to purge categories: %w", err)
	}
	counts.Categories = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM account_classes WHERE tenant_id = $1;`, tenantID)
	if err != nil {
		return counts, fmt.Errorf("failed to purge classes: %w", err)
	}
	counts.Classes = tag.RowsAffected()

	return counts, nil
}
