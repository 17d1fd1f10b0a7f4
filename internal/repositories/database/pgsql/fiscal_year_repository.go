package pgsql

import (
	"context"
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

type PgxFiscalYearRepository struct {
	BaseRepository
}

// newPgxFiscalYearRepository creates a new repository for fiscal year data.
func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFiscalYearRepository implements portsrepo.FiscalYearRepositoryFacade
var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

func toDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		FiscalYearID: m.FiscalYearID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Code:         m.Code,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		ClosedAt:     m.ClosedAt,
		IsActive:     m.IsActive,
		IsLocked:     m.IsLocked,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:     m.PeriodID,
		TenantID:     m.TenantID,
		FiscalYearID: m.FiscalYearID,
		Name:         m.Name,
		Code:         m.Code,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Number:       m.Number,
		IsClosed:     m.IsClosed,
		IsLocked:     m.IsLocked,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const fiscalYearColumns = `fiscal_year_id, tenant_id, name, code, start_date, end_date, is_closed, closed_at, is_active, is_locked, created_at, last_updated_at`

func scanFiscalYear(row pgx.Row) (*domain.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.TenantID,
		&m.Name,
		&m.Code,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.ClosedAt,
		&m.IsActive,
		&m.IsLocked,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan fiscal year row: %w", err)
	}
	year := toDomainFiscalYear(m)
	return &year, nil
}

// FindFiscalYearByID retrieves a fiscal year by its unique identifier.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, tenantID string, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE tenant_id = $1 AND fiscal_year_id = $2;`
	return scanFiscalYear(r.Pool.QueryRow(ctx, query, tenantID, fiscalYearID))
}

// FindFiscalYearByCode retrieves a fiscal year by its (tenant, code) key.
func (r *PgxFiscalYearRepository) FindFiscalYearByCode(ctx context.Context, tenantID string, code string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE tenant_id = $1 AND code = $2;`
	return scanFiscalYear(r.Pool.QueryRow(ctx, query, tenantID, code))
}

// ListFiscalYears retrieves all fiscal years of a tenant, most recent first.
func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context, tenantID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE tenant_id = $1 ORDER BY start_date DESC;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal years: %w", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		year, err := scanFiscalYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, *year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fiscal year rows: %w", err)
	}
	return years, nil
}

// CountOverlappingYears counts fiscal years intersecting [start, end].
func (r *PgxFiscalYearRepository) CountOverlappingYears(ctx context.Context, tenantID string, start time.Time, end time.Time, excludeID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM fiscal_years
		WHERE tenant_id = $1 AND start_date <= $3 AND end_date >= $2
		  AND ($4 = '' OR fiscal_year_id != $4);
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, tenantID, start, end, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overlapping fiscal years: %w", err)
	}
	return count, nil
}

// ListPeriods retrieves the periods of a fiscal year ordered by number.
func (r *PgxFiscalYearRepository) ListPeriods(ctx context.Context, tenantID string, fiscalYearID string) ([]domain.FiscalPeriod, error) {
	query := `
		SELECT period_id, tenant_id, fiscal_year_id, name, code, start_date, end_date, number, is_closed, is_locked, created_at, last_updated_at
		FROM fiscal_periods
		WHERE tenant_id = $1 AND fiscal_year_id = $2
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		var m models.FiscalPeriod
		err := rows.Scan(
			&m.PeriodID,
			&m.TenantID,
			&m.FiscalYearID,
			&m.Name,
			&m.Code,
			&m.StartDate,
			&m.EndDate,
			&m.Number,
			&m.IsClosed,
			&m.IsLocked,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period row: %w", err)
		}
		periods = append(periods, toDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fiscal period rows: %w", err)
	}
	return periods, nil
}

// SaveFiscalYear persists a new fiscal year.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		year.FiscalYearID,
		year.TenantID,
		year.Name,
		year.Code,
		year.StartDate,
		year.EndDate,
		year.IsClosed,
		year.ClosedAt,
		year.IsActive,
		year.IsLocked,
		year.CreatedAt,
		year.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: fiscal year with code %s already exists", apperrors.ErrDuplicate, year.Code)
		}
		return fmt.Errorf("failed to save fiscal year %s: %w", year.Code, err)
	}
	return nil
}

// UpdateFiscalYear updates an existing fiscal year.
func (r *PgxFiscalYearRepository) UpdateFiscalYear(ctx context.Context, year domain.FiscalYear) error {
	query := `
		UPDATE fiscal_years
		SET name = $3, is_closed = $4, closed_at = $5, is_active = $6, is_locked = $7, last_updated_at = $8
		WHERE tenant_id = $1 AND fiscal_year_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		year.TenantID,
		year.FiscalYearID,
		year.Name,
		year.IsClosed,
		year.ClosedAt,
		year.IsActive,
		year.IsLocked,
		year.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update fiscal year %s: %w", year.FiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePeriods persists a batch of generated periods.
func (r *PgxFiscalYearRepository) SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error {
	if len(periods) == 0 {
		return nil
	}
	query := `
		INSERT INTO fiscal_periods (period_id, tenant_id, fiscal_year_id, name, code, start_date, end_date, number, is_closed, is_locked, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, p := range periods {
		batch.Queue(query,
			p.PeriodID,
			p.TenantID,
			p.FiscalYearID,
			p.Name,
			p.Code,
			p.StartDate,
			p.EndDate,
			p.Number,
			p.IsClosed,
			p.IsLocked,
			p.CreatedAt,
			p.LastUpdatedAt,
		)
	}
	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range periods {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: period already exists for this fiscal year", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save fiscal period: %w", err)
		}
	}
	return nil
}

// DeletePeriods removes all periods of a fiscal year, ahead of regeneration.
func (r *PgxFiscalYearRepository) DeletePeriods(ctx context.Context, tenantID string, fiscalYearID string) error {
	query := `DELETE FROM fiscal_periods WHERE tenant_id = $1 AND fiscal_year_id = $2;`
	if _, err := r.Pool.Exec(ctx, query, tenantID, fiscalYearID); err != nil {
		return fmt.Errorf("failed to delete fiscal periods: %w", err)
	}
	return nil
}
