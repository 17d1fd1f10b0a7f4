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

type PgxTiersRepository struct {
	BaseRepository
}

// newPgxTiersRepository creates a new repository for third-party data.
func newPgxTiersRepository(pool *pgxpool.Pool) portsrepo.TiersRepositoryFacade {
	return &PgxTiersRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTiersRepository implements portsrepo.TiersRepositoryFacade
var _ portsrepo.TiersRepositoryFacade = (*PgxTiersRepository)(nil)

func toDomainTiers(m models.Tiers) domain.Tiers {
	return domain.Tiers{
		TiersID:   m.TiersID,
		TenantID:  m.TenantID,
		Code:      m.Code,
		Name:      m.Name,
		AccountID: m.AccountID,
		Type:      domain.TiersType(m.Type),
		Address:   m.Address,
		Email:     m.Email,
		Phone:     m.Phone,
		TaxID:     m.TaxID,
		Notes:     m.Notes,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const tiersColumns = `tiers_id, tenant_id, code, name, account_id, type, address, email, phone, tax_id, notes, is_active, created_at, last_updated_at`

func scanTiers(row pgx.Row) (*domain.Tiers, error) {
	var m models.Tiers
	err := row.Scan(
		&m.TiersID,
		&m.TenantID,
		&m.Code,
		&m.Name,
		&m.AccountID,
		&m.Type,
		&m.Address,
		&m.Email,
		&m.Phone,
		&m.TaxID,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan tiers row: %w", err)
	}
	tiers := toDomainTiers(m)
	return &tiers, nil
}

// FindTiersByID retrieves a tiers by its unique identifier.
func (r *PgxTiersRepository) FindTiersByID(ctx context.Context, tenantID string, tiersID string) (*domain.Tiers, error) {
	query := `SELECT ` + tiersColumns + ` FROM tiers WHERE tenant_id = $1 AND tiers_id = $2;`
	return scanTiers(r.Pool.QueryRow(ctx, query, tenantID, tiersID))
}

// FindTiersByCode retrieves a tiers by its (tenant, code) key.
func (r *PgxTiersRepository) FindTiersByCode(ctx context.Context, tenantID string, code string) (*domain.Tiers, error) {
	query := `SELECT ` + tiersColumns + ` FROM tiers WHERE tenant_id = $1 AND code = $2;`
	return scanTiers(r.Pool.QueryRow(ctx, query, tenantID, code))
}

// ListTiers retrieves tiers of a tenant, optionally filtered by type.
func (r *PgxTiersRepository) ListTiers(ctx context.Context, tenantID string, tiersType domain.TiersType, limit int, offset int) ([]domain.Tiers, error) {
	query := `SELECT ` + tiersColumns + ` FROM tiers WHERE tenant_id = $1`
	args := []any{tenantID}
	if tiersType != "" {
		args = append(args, string(tiersType))
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY code, name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tiers: %w", err)
	}
	defer rows.Close()

	tiers := []domain.Tiers{}
	for rows.Next() {
		t, err := scanTiers(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tiers rows: %w", err)
	}
	return tiers, nil
}

// SaveTiers persists a new tiers.
func (r *PgxTiersRepository) SaveTiers(ctx context.Context, tiers domain.Tiers) error {
	query := `
		INSERT INTO tiers (` + tiersColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		tiers.TiersID,
		tiers.TenantID,
		tiers.Code,
		tiers.Name,
		tiers.AccountID,
		string(tiers.Type),
		tiers.Address,
		tiers.Email,
		tiers.Phone,
		tiers.TaxID,
		tiers.Notes,
		tiers.IsActive,
		tiers.CreatedAt,
		tiers.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: tiers with code %s already exists", apperrors.ErrDuplicate, tiers.Code)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, tiers.AccountID)
			}
		}
		return fmt.Errorf("failed to save tiers %s: %w", tiers.Code, err)
	}
	return nil
}

// UpdateTiers updates an existing tiers.
func (r *PgxTiersRepository) UpdateTiers(ctx context.Context, tiers domain.Tiers) error {
	query := `
		UPDATE tiers
		SET name = $3, address = $4, email = $5, phone = $6, tax_id = $7, notes = $8, is_active = $9, last_updated_at = $10
		WHERE tenant_id = $1 AND tiers_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		tiers.TenantID,
		tiers.TiersID,
		tiers.Name,
		tiers.Address,
		tiers.Email,
		tiers.Phone,
		tiers.TaxID,
		tiers.Notes,
		tiers.IsActive,
		tiers.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update tiers %s: %w", tiers.TiersID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateTiers marks a tiers as inactive.
func (r *PgxTiersRepository) DeactivateTiers(ctx context.Context, tenantID string, tiersID string, now time.Time) error {
	query := `
		UPDATE tiers
		SET is_active = FALSE, last_updated_at = $3
		WHERE tenant_id = $1 AND tiers_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, tiersID, now)
	if err != nil {
		return fmt.Errorf("failed to deactivate tiers %s: %w", tiersID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
