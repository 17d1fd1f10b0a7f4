package repositories

import (
	"context"
	"time"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years and periods.
type FiscalYearReader interface {
	// FindFiscalYearByID retrieves a fiscal year by its unique identifier.
	FindFiscalYearByID(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error)

	// FindFiscalYearByCode retrieves a fiscal year by its (tenant, code) key.
	FindFiscalYearByCode(ctx context.Context, tenantID string, code string) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years of a tenant, most recent first.
	ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error)

	// CountOverlappingYears counts fiscal years intersecting [start, end],
	// excluding the given year ID (pass "" when creating).
	CountOverlappingYears(ctx context.Context, tenantID string, start time.Time, end time.Time, excludeID string) (int, error)

	// ListPeriods retrieves the periods of a fiscal year ordered by number.
	ListPeriods(ctx context.Context, tenantID string, fiscalYearID string) ([]domain.FiscalPeriod, error)
}

// FiscalYearWriter defines write operations for fiscal years and periods.
type FiscalYearWriter interface {
	// SaveFiscalYear persists a new fiscal year.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// UpdateFiscalYear updates an existing fiscal year.
	UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error

	// SavePeriods persists a batch of generated periods.
	SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error

	// DeletePeriods removes all periods of a fiscal year, ahead of regeneration.
	DeletePeriods(ctx context.Context, tenantID string, fiscalYearID string) error
}

// FiscalYearRepositoryFacade combines fiscal year repository interfaces.
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
