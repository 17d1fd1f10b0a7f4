package repositories

import (
	"context"
	"time"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// TiersReader defines read operations for third-party records.
type TiersReader interface {
	// FindTiersByID retrieves a tiers by its unique identifier.
	FindTiersByID(ctx context.Context, tenantID string, tiersID string) (*domain.Tiers, error)

	// FindTiersByCode retrieves a tiers by its (tenant, code) key.
	FindTiersByCode(ctx context.Context, tenantID string, code string) (*domain.Tiers, error)

	// ListTiers retrieves tiers of a tenant, optionally filtered by type.
	ListTiers(ctx context.Context, tenantID string, tiersType domain.TiersType, limit int, offset int) ([]domain.Tiers, error)
}

// TiersWriter defines write operations for third-party records.
type TiersWriter interface {
	// SaveTiers persists a new tiers.
	SaveTiers(ctx context.Context, tiers domain.Tiers) error

	// UpdateTiers updates an existing tiers.
	UpdateTiers(ctx context.Context, tiers domain.Tiers) error

	// DeactivateTiers marks a tiers as inactive.
	DeactivateTiers(ctx context.Context, tenantID string, tiersID string, now time.Time) error
}

// TiersRepositoryFacade combines tiers repository interfaces.
type TiersRepositoryFacade interface {
	TiersReader
	TiersWriter
}
