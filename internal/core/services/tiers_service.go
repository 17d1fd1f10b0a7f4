package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
	"github.com/plancompta/ohada_chart_app/internal/utils/accounting"
)

// TiersService handles third parties (customers, suppliers, employees).
// Every tiers hangs off a class-4 account and carries a formatted code built
// from that account's three-digit prefix plus letters of the name.
type TiersService struct {
	tiersRepo portsrepo.TiersRepositoryFacade
	chartRepo portsrepo.ChartRepositoryFacade
}

// NewTiersService creates a new TiersService.
func NewTiersService(tr portsrepo.TiersRepositoryFacade, cr portsrepo.ChartRepositoryFacade) portssvc.TiersSvcFacade {
	return &TiersService{tiersRepo: tr, chartRepo: cr}
}

// Ensure TiersService implements the portssvc.TiersSvcFacade interface
var _ portssvc.TiersSvcFacade = (*TiersService)(nil)

// CreateTiers creates a third party after formatting its code and validating
// it against the linked account.
func (s *TiersService) CreateTiers(ctx context.Context, tenantID string, req dto.CreateTiersRequest) (*domain.Tiers, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.chartRepo.FindAccountByID(ctx, tenantID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountID, err)
	}
	if !strings.HasPrefix(account.Code, "4") {
		return nil, fmt.Errorf("%w: tiers must be linked to a class 4 account, got class %c", apperrors.ErrValidation, account.Code[0])
	}

	prefix := account.Code
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	code := accounting.FormatCode(req.Code, prefix, domain.TiersCodeLength)
	if err := validateTiersCode(code); err != nil {
		return nil, err
	}

	if _, err := s.tiersRepo.FindTiersByCode(ctx, tenantID, code); err == nil {
		return nil, fmt.Errorf("%w: tiers with code %s already exists", apperrors.ErrDuplicate, code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing tiers: %w", err)
	}

	now := time.Now()
	tiers := domain.Tiers{
		TiersID:   uuid.NewString(),
		TenantID:  tenantID,
		Code:      code,
		Name:      accounting.FormatName(req.Name),
		AccountID: account.AccountID,
		Type:      req.Type,
		Address:   req.Address,
		Email:     req.Email,
		Phone:     req.Phone,
		TaxID:     req.TaxID,
		Notes:     req.Notes,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.tiersRepo.SaveTiers(ctx, tiers); err != nil {
		logger.Error("Failed to save tiers", slog.String("error", err.Error()), slog.String("code", code))
		return nil, fmt.Errorf("failed to create tiers: %w", err)
	}

	logger.Info("Tiers created", slog.String("tiers_id", tiers.TiersID), slog.String("code", code), slog.String("type", string(req.Type)))
	return &tiers, nil
}

// validateTiersCode enforces the tiers code convention: a 401 (supplier),
// 411 (customer) or 422 (staff) prefix, at least 6 characters, with positions
// 4-6 carrying the first letters of the name.
func validateTiersCode(code string) error {
	if !strings.HasPrefix(code, "401") && !strings.HasPrefix(code, "411") && !strings.HasPrefix(code, "422") {
		return fmt.Errorf("%w: tiers code must start with 401 (supplier), 411 (customer) or 422 (staff)", apperrors.ErrValidation)
	}
	if len(code) < domain.TiersCodeLength {
		return fmt.Errorf("%w: tiers code must be at least %d characters (prefix + 3 letters of the name)", apperrors.ErrValidation, domain.TiersCodeLength)
	}
	for _, r := range code[3:6] {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: positions 4-6 of the tiers code must be the first letters of the name", apperrors.ErrValidation)
		}
	}
	return nil
}

// GetTiersByID returns the tiers with the given identifier.
func (s *TiersService) GetTiersByID(ctx context.Context, tenantID string, tiersID string) (*domain.Tiers, error) {
	tiers, err := s.tiersRepo.FindTiersByID(ctx, tenantID, tiersID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find tiers %s: %w", tiersID, err)
	}
	return tiers, nil
}

// ListTiers returns the tenant's third parties, optionally by type.
func (s *TiersService) ListTiers(ctx context.Context, tenantID string, params dto.ListTiersParams) ([]domain.Tiers, error) {
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	tiers, err := s.tiersRepo.ListTiers(ctx, tenantID, domain.TiersType(params.Type), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", err)
	}
	return tiers, nil
}

// UpdateTiers updates the mutable fields of a third party. Code, account and
// type are fixed at creation.
func (s *TiersService) UpdateTiers(ctx context.Context, tenantID string, tiersID string, req dto.UpdateTiersRequest) (*domain.Tiers, error) {
	tiers, err := s.tiersRepo.FindTiersByID(ctx, tenantID, tiersID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find tiers %s for update: %w", tiersID, err)
	}

	if req.Name != nil {
		tiers.Name = accounting.FormatName(*req.Name)
	}
	if req.Address != nil {
		tiers.Address = *req.Address
	}
	if req.Email != nil {
		tiers.Email = *req.Email
	}
	if req.Phone != nil {
		tiers.Phone = *req.Phone
	}
	if req.TaxID != nil {
		tiers.TaxID = *req.TaxID
	}
	if req.Notes != nil {
		tiers.Notes = *req.Notes
	}
	tiers.LastUpdatedAt = time.Now()

	if err := s.tiersRepo.UpdateTiers(ctx, *tiers); err != nil {
		return nil, fmt.Errorf("failed to update tiers %s: %w", tiersID, err)
	}
	return tiers, nil
}

// DeactivateTiers marks a third party inactive.
func (s *TiersService) DeactivateTiers(ctx context.Context, tenantID string, tiersID string) error {
	if _, err := s.tiersRepo.FindTiersByID(ctx, tenantID, tiersID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find tiers %s: %w", tiersID, err)
	}
	if err := s.tiersRepo.DeactivateTiers(ctx, tenantID, tiersID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate tiers %s: %w", tiersID, err)
	}
	return nil
}

// defaultTiersSeed describes one bootstrap tiers and where its account comes
// from: the exact code first, then the first account under the prefix.
type defaultTiersSeed struct {
	rawCode       string
	name          string
	tiersType     domain.TiersType
	accountCode   string
	accountPrefix string
	notes         string
}

var defaultTiersSeeds = []defaultTiersSeed{
	{rawCode: "CLIENT001", name: "Client générique", tiersType: domain.TiersCustomer, accountCode: "411", accountPrefix: "41", notes: "Compte client par défaut"},
	{rawCode: "FOURN001", name: "Fournisseur générique", tiersType: domain.TiersSupplier, accountCode: "401", accountPrefix: "40", notes: "Compte fournisseur par défaut"},
	{rawCode: "EMPL001", name: "Employé générique", tiersType: domain.TiersEmployee, accountCode: "421", accountPrefix: "42", notes: "Compte employé par défaut"},
}

// CreateDefaultTiers bootstraps a generic customer, supplier and employee for
// a fresh tenant. Seeds whose code already exists are skipped, so the call is
// idempotent.
func (s *TiersService) CreateDefaultTiers(ctx context.Context, tenantID string) ([]domain.Tiers, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created []domain.Tiers
	now := time.Now()
	for _, seed := range defaultTiersSeeds {
		account, err := s.chartRepo.FindAccountByCode(ctx, tenantID, seed.accountCode)
		if errors.Is(err, apperrors.ErrNotFound) {
			account, err = s.chartRepo.FindFirstAccountWithPrefix(ctx, tenantID, seed.accountPrefix)
		}
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no account under prefix %s, import the chart first", apperrors.ErrValidation, seed.accountPrefix)
			}
			return nil, fmt.Errorf("failed to find account for default tiers %s: %w", seed.rawCode, err)
		}

		prefix := account.Code
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		code := accounting.FormatCode(seed.rawCode, prefix, domain.TiersCodeLength)

		if _, err := s.tiersRepo.FindTiersByCode(ctx, tenantID, code); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check for existing tiers %s: %w", code, err)
		}

		tiers := domain.Tiers{
			TiersID:   uuid.NewString(),
			TenantID:  tenantID,
			Code:      code,
			Name:      accounting.FormatName(seed.name),
			AccountID: account.AccountID,
			Type:      seed.tiersType,
			Notes:     seed.notes,
			IsActive:  true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.tiersRepo.SaveTiers(ctx, tiers); err != nil {
			return nil, fmt.Errorf("failed to create default tiers %s: %w", code, err)
		}
		created = append(created, tiers)
	}

	logger.Info("Default tiers created", slog.String("tenant_id", tenantID), slog.Int("count", len(created)))
	return created, nil
}
