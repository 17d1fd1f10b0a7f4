package services

import (
	"context"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	"github.com/plancompta/ohada_chart_app/internal/dto"
)

// TiersSvcFacade defines third-party (tiers) operations.
type TiersSvcFacade interface {
	CreateTiers(ctx context.Context, tenantID string, req dto.CreateTiersRequest) (*domain.Tiers, error)
	GetTiersByID(ctx context.Context, tenantID string, tiersID string) (*domain.Tiers, error)
	ListTiers(ctx context.Context, tenantID string, params dto.ListTiersParams) ([]domain.Tiers, error)
	UpdateTiers(ctx context.Context, tenantID string, tiersID string, req dto.UpdateTiersRequest) (*domain.Tiers, error)
	DeactivateTiers(ctx context.Context, tenantID string, tiersID string) error

	// CreateDefaultTiers bootstraps the generic customer, supplier and
	// employee tiers against the tenant's 411/401/421 accounts.
	CreateDefaultTiers(ctx context.Context, tenantID string) ([]domain.Tiers, error)
}
