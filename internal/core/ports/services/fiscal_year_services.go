package services

import (
	"context"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	"github.com/plancompta/ohada_chart_app/internal/dto"
)

// FiscalYearSvcFacade defines fiscal year and period operations.
type FiscalYearSvcFacade interface {
	CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error)
	GetFiscalYearByID(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error)
	UpdateFiscalYear(ctx context.Context, tenantID string, fiscalYearID string, req dto.UpdateFiscalYearRequest) (*domain.FiscalYear, error)
	CloseFiscalYear(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error)

	// GeneratePeriods creates the monthly or quarterly periods of a fiscal
	// year, replacing any previously generated set.
	GeneratePeriods(ctx context.Context, tenantID string, fiscalYearID string, periodType domain.PeriodType) ([]domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, tenantID string, fiscalYearID string) ([]domain.FiscalPeriod, error)
}
