package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
)

// French period names, indexed by quarter number - 1.
var quarterNames = [4]string{
	"Premier trimestre",
	"Deuxième trimestre",
	"Troisième trimestre",
	"Quatrième trimestre",
}

// FiscalYearService handles fiscal years and their period generation.
type FiscalYearService struct {
	fiscalYearRepo portsrepo.FiscalYearRepositoryFacade
}

// NewFiscalYearService creates a new FiscalYearService.
func NewFiscalYearService(repo portsrepo.FiscalYearRepositoryFacade) portssvc.FiscalYearSvcFacade {
	return &FiscalYearService{fiscalYearRepo: repo}
}

// Ensure FiscalYearService implements the portssvc.FiscalYearSvcFacade interface
var _ portssvc.FiscalYearSvcFacade = (*FiscalYearService)(nil)

// CreateFiscalYear creates a fiscal year after checking date order and that it
// does not overlap another year of the same tenant.
func (s *FiscalYearService) CreateFiscalYear(ctx context.Context, tenantID string, req dto.CreateFiscalYearRequest) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.StartDate.Before(req.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidation)
	}
	overlapping, err := s.fiscalYearRepo.CountOverlappingYears(ctx, tenantID, req.StartDate, req.EndDate, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check fiscal year overlap: %w", err)
	}
	if overlapping > 0 {
		return nil, fmt.Errorf("%w: fiscal year overlaps an existing one", apperrors.ErrValidation)
	}

	now := time.Now()
	year := domain.FiscalYear{
		FiscalYearID: uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Code:         req.Code,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.fiscalYearRepo.SaveFiscalYear(ctx, year); err != nil {
		logger.Error("Failed to save fiscal year", slog.String("error", err.Error()), slog.String("code", req.Code))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: fiscal year with code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		return nil, fmt.Errorf("failed to create fiscal year: %w", err)
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.String("code", year.Code))
	return &year, nil
}

// GetFiscalYearByID returns the fiscal year with the given identifier.
func (s *FiscalYearService) GetFiscalYearByID(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	return year, nil
}

// ListFiscalYears returns all fiscal years of the tenant.
func (s *FiscalYearService) ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	years, err := s.fiscalYearRepo.ListFiscalYears(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiscal years: %w", err)
	}
	return years, nil
}

// UpdateFiscalYear updates the mutable fields of a fiscal year.
func (s *FiscalYearService) UpdateFiscalYear(ctx context.Context, tenantID string, fiscalYearID string, req dto.UpdateFiscalYearRequest) (*domain.FiscalYear, error) {
	year, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find fiscal year %s for update: %w", fiscalYearID, err)
	}
	if year.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is closed", apperrors.ErrValidation, year.Code)
	}

	if req.Name != nil {
		year.Name = *req.Name
	}
	if req.IsActive != nil {
		year.IsActive = *req.IsActive
	}
	if req.IsLocked != nil {
		year.IsLocked = *req.IsLocked
	}
	year.LastUpdatedAt = time.Now()

	if err := s.fiscalYearRepo.UpdateFiscalYear(ctx, *year); err != nil {
		return nil, fmt.Errorf("failed to update fiscal year %s: %w", fiscalYearID, err)
	}
	return year, nil
}

// CloseFiscalYear marks a fiscal year closed. Closing is terminal: a closed
// year rejects further updates and period regeneration.
func (s *FiscalYearService) CloseFiscalYear(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	year, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.IsClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is already closed", apperrors.ErrValidation, year.Code)
	}

	now := time.Now()
	year.IsClosed = true
	year.ClosedAt = &now
	year.IsLocked = true
	year.LastUpdatedAt = now

	if err := s.fiscalYearRepo.UpdateFiscalYear(ctx, *year); err != nil {
		return nil, fmt.Errorf("failed to close fiscal year %s: %w", fiscalYearID, err)
	}
	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID), slog.String("code", year.Code))
	return year, nil
}

// GeneratePeriods creates the monthly or quarterly periods of a fiscal year.
// Any previously generated set is replaced. The final period is clipped to the
// year's end date, so years not aligned on month boundaries stay covered.
func (s *FiscalYearService) GeneratePeriods(ctx context.Context, tenantID string, fiscalYearID string, periodType domain.PeriodType) ([]domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if periodType == "" {
		periodType = domain.PeriodMonthly
	}
	if periodType != domain.PeriodMonthly && periodType != domain.PeriodQuarterly {
		return nil, fmt.Errorf("%w: unknown period type %q", apperrors.ErrValidation, periodType)
	}

	year, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	if year.IsClosed || year.IsLocked {
		return nil, fmt.Errorf("%w: fiscal year %s does not accept period changes", apperrors.ErrValidation, year.Code)
	}

	periods := buildPeriods(year, periodType)

	if err := s.fiscalYearRepo.DeletePeriods(ctx, tenantID, fiscalYearID); err != nil {
		return nil, fmt.Errorf("failed to delete previous periods: %w", err)
	}
	if err := s.fiscalYearRepo.SavePeriods(ctx, periods); err != nil {
		return nil, fmt.Errorf("failed to save generated periods: %w", err)
	}

	logger.Info("Fiscal periods generated",
		slog.String("fiscal_year_id", fiscalYearID),
		slog.String("period_type", string(periodType)),
		slog.Int("count", len(periods)))
	return periods, nil
}

// buildPeriods slices [start, end] into consecutive month or quarter spans.
func buildPeriods(year *domain.FiscalYear, periodType domain.PeriodType) []domain.FiscalPeriod {
	months := 1
	if periodType == domain.PeriodQuarterly {
		months = 3
	}

	now := time.Now()
	var periods []domain.FiscalPeriod
	start := year.StartDate
	for number := 1; !start.After(year.EndDate); number++ {
		end := start.AddDate(0, months, 0).AddDate(0, 0, -1)
		if end.After(year.EndDate) {
			end = year.EndDate
		}

		var name, code string
		if periodType == domain.PeriodQuarterly {
			name = quarterName(number)
			code = fmt.Sprintf("%s-Q%d", year.Code, number)
		} else {
			name = fmt.Sprintf("Mois %d", number)
			code = fmt.Sprintf("%s-M%02d", year.Code, number)
		}

		periods = append(periods, domain.FiscalPeriod{
			PeriodID:     uuid.NewString(),
			TenantID:     year.TenantID,
			FiscalYearID: year.FiscalYearID,
			Name:         name,
			Code:         code,
			StartDate:    start,
			EndDate:      end,
			Number:       number,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
		start = end.AddDate(0, 0, 1)
	}
	return periods
}

func quarterName(number int) string {
	if number >= 1 && number <= len(quarterNames) {
		return quarterNames[number-1]
	}
	return fmt.Sprintf("Trimestre %d", number)
}

// ListPeriods returns the periods of a fiscal year ordered by number.
func (s *FiscalYearService) ListPeriods(ctx context.Context, tenantID string, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	if _, err := s.fiscalYearRepo.FindFiscalYearByID(ctx, tenantID, fiscalYearID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	periods, err := s.fiscalYearRepo.ListPeriods(ctx, tenantID, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}
