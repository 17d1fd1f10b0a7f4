package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockChartRepository is a mock implementation of portsrepo.ChartRepositoryFacade.
type MockChartRepository struct {
	mock.Mock
}

var _ portsrepo.ChartRepositoryFacade = (*MockChartRepository)(nil)

func (m *MockChartRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockChartRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockChartRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockChartRepository) FindClassByNumber(ctx context.Context, tenantID string, number int) (*domain.AccountClass, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountClass), args.Error(1)
}

func (m *MockChartRepository) ListClasses(ctx context.Context, tenantID string) ([]domain.AccountClass, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountClass), args.Error(1)
}

func (m *MockChartRepository) FindCategoryByCode(ctx context.Context, tenantID string, code string) (*domain.AccountCategory, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountCategory), args.Error(1)
}

func (m *MockChartRepository) ListCategories(ctx context.Context, tenantID string, classID string) ([]domain.AccountCategory, error) {
	args := m.Called(ctx, tenantID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCategory), args.Error(1)
}

func (m *MockChartRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartRepository) FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartRepository) FindFirstAccountWithPrefix(ctx context.Context, tenantID string, prefix string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartRepository) ListAccounts(ctx context.Context, tenantID string, filter portsrepo.AccountFilter, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockChartRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartRepository) DeactivateAccount(ctx context.Context, tenantID string, accountID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, now)
	return args.Error(0)
}

func (m *MockChartRepository) GetOrCreateClassTx(ctx context.Context, tx pgx.Tx, class domain.AccountClass) (*domain.AccountClass, bool, error) {
	args := m.Called(ctx, tx, class)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.AccountClass), args.Bool(1), args.Error(2)
}

func (m *MockChartRepository) GetOrCreateCategoryTx(ctx context.Context, tx pgx.Tx, category domain.AccountCategory) (*domain.AccountCategory, bool, error) {
	args := m.Called(ctx, tx, category)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.AccountCategory), args.Bool(1), args.Error(2)
}

func (m *MockChartRepository) FindAccountByCodeTx(ctx context.Context, tx pgx.Tx, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartRepository) FindAccountByNormalizedCodeTx(ctx context.Context, tx pgx.Tx, tenantID string, paddedCode string) (*domain.Account, error) {
	args := m.Called(ctx, tx, tenantID, paddedCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartRepository) SaveAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockChartRepository) UpdateAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockChartRepository) SetAccountParentTx(ctx context.Context, tx pgx.Tx, tenantID string, accountID string, parentAccountID string) error {
	args := m.Called(ctx, tx, tenantID, accountID, parentAccountID)
	return args.Error(0)
}

func (m *MockChartRepository) PurgeChartTx(ctx context.Context, tx pgx.Tx, tenantID string) (portsrepo.PurgeCounts, error) {
	args := m.Called(ctx, tx, tenantID)
	return args.Get(0).(portsrepo.PurgeCounts), args.Error(1)
}

// MockFiscalYearRepository is a mock implementation of portsrepo.FiscalYearRepositoryFacade.
type MockFiscalYearRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalYearRepositoryFacade = (*MockFiscalYearRepository)(nil)

func (m *MockFiscalYearRepository) FindFiscalYearByID(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindFiscalYearByCode(ctx context.Context, tenantID string, code string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) CountOverlappingYears(ctx context.Context, tenantID string, start time.Time, end time.Time, excludeID string) (int, error) {
	args := m.Called(ctx, tenantID, start, end, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockFiscalYearRepository) ListPeriods(ctx context.Context, tenantID string, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalYearRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error {
	args := m.Called(ctx, periods)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) DeletePeriods(ctx context.Context, tenantID string, fiscalYearID string) error {
	args := m.Called(ctx, tenantID, fiscalYearID)
	return args.Error(0)
}

// MockTiersRepository is a mock implementation of portsrepo.TiersRepositoryFacade.
type MockTiersRepository struct {
	mock.Mock
}

var _ portsrepo.TiersRepositoryFacade = (*MockTiersRepository)(nil)

func (m *MockTiersRepository) FindTiersByID(ctx context.Context, tenantID string, tiersID string) (*domain.Tiers, error) {
	args := m.Called(ctx, tenantID, tiersID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tiers), args.Error(1)
}

func (m *MockTiersRepository) FindTiersByCode(ctx context.Context, tenantID string, code string) (*domain.Tiers, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tiers), args.Error(1)
}

func (m *MockTiersRepository) ListTiers(ctx context.Context, tenantID string, tiersType domain.TiersType, limit int, offset int) ([]domain.Tiers, error) {
	args := m.Called(ctx, tenantID, tiersType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tiers), args.Error(1)
}

func (m *MockTiersRepository) SaveTiers(ctx context.Context, tiers domain.Tiers) error {
	args := m.Called(ctx, tiers)
	return args.Error(0)
}

func (m *MockTiersRepository) UpdateTiers(ctx context.Context, tiers domain.Tiers) error {
	args := m.Called(ctx, tiers)
	return args.Error(0)
}

func (m *MockTiersRepository) DeactivateTiers(ctx context.Context, tenantID string, tiersID string, now time.Time) error {
	args := m.Called(ctx, tenantID, tiersID, now)
	return args.Error(0)
}
