package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// AccountFilter narrows ListAccounts results. Zero values mean "no filter".
type AccountFilter struct {
	ClassID     string
	CategoryID  string
	AccountType domain.AccountType
	ParentID    string // "null" filters root accounts
	IsActive    *bool
	Search      string // Matches code, name or description
}

// ChartReader defines read operations over classes, categories and accounts.
// Every operation is scoped to one tenant.
type ChartReader interface {
	// FindClassByNumber retrieves an account class by its OHADA number (1-9).
	FindClassByNumber(ctx context.Context, tenantID string, number int) (*domain.AccountClass, error)

	// ListClasses retrieves all account classes of a tenant ordered by number.
	ListClasses(ctx context.Context, tenantID string) ([]domain.AccountClass, error)

	// FindCategoryByCode retrieves a category by its two-digit code.
	FindCategoryByCode(ctx context.Context, tenantID string, code string) (*domain.AccountCategory, error)

	// ListCategories retrieves categories, optionally restricted to one class.
	ListCategories(ctx context.Context, tenantID string, classID string) ([]domain.AccountCategory, error)

	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its natural key (tenant, code).
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindFirstAccountWithPrefix retrieves the lowest-code account whose code
	// starts with the given prefix. Used by the default-tiers bootstrap.
	FindFirstAccountWithPrefix(ctx context.Context, tenantID string, prefix string) (*domain.Account, error)

	// ListAccounts retrieves a filtered, paginated account list ordered by code.
	ListAccounts(ctx context.Context, tenantID string, filter AccountFilter, limit int, offset int) ([]domain.Account, error)
}

// ChartWriter defines single-entity write operations.
type ChartWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, now time.Time) error
}

// PurgeCounts reports how many rows a chart purge removed.
type PurgeCounts struct {
	Accounts   int64
	Categories int64
	Classes    int64
}

// ChartImportSupport defines the transactional operations the importer needs:
// get-or-create by natural key, upsert by (tenant, code), parent linking and
// bulk purge, all inside one caller-controlled transaction.
type ChartImportSupport interface {
	// GetOrCreateClassTx returns the class with the given (tenant, number),
	// creating it from the passed entity if absent. The boolean reports creation.
	GetOrCreateClassTx(ctx context.Context, tx pgx.Tx, class domain.AccountClass) (*domain.AccountClass, bool, error)

	// GetOrCreateCategoryTx returns the category with the given (tenant, code),
	// creating it from the passed entity if absent. The boolean reports creation.
	GetOrCreateCategoryTx(ctx context.Context, tx pgx.Tx, category domain.AccountCategory) (*domain.AccountCategory, bool, error)

	// FindAccountByCodeTx retrieves an account by (tenant, code) within the transaction.
	FindAccountByCodeTx(ctx context.Context, tx pgx.Tx, tenantID string, code string) (*domain.Account, error)

	// FindAccountByNormalizedCodeTx retrieves the account whose zero-padded
	// 8-digit code equals the given normalized code. Used for parent linking,
	// where ancestor codes are always in padded form.
	FindAccountByNormalizedCodeTx(ctx context.Context, tx pgx.Tx, tenantID string, paddedCode string) (*domain.Account, error)

	// SaveAccountTx inserts a new account within the transaction.
	SaveAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccountTx updates all fields of an existing account within the transaction.
	UpdateAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// SetAccountParentTx links an account to its parent within the transaction.
	SetAccountParentTx(ctx context.Context, tx pgx.Tx, tenantID string, accountID string, parentAccountID string) error

	// PurgeChartTx hard-deletes all accounts, categories and classes of a tenant.
	PurgeChartTx(ctx context.Context, tx pgx.Tx, tenantID string) (PurgeCounts, error)
}

// ChartRepositoryFacade combines all chart repository interfaces for clients
// that need full access, the importer in particular.
type ChartRepositoryFacade interface {
	ChartReader
	ChartWriter
	ChartImportSupport
	TransactionManager
}
