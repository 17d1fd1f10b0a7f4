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
	"github.com/plancompta/ohada_chart_app/internal/ohada"
)

// ChartService handles business logic for classes, categories and accounts.
// Single-account writes derive classification and hierarchy from the code,
// exactly like the bulk importer does.
type ChartService struct {
	chartRepo portsrepo.ChartRepositoryFacade
}

// NewChartService creates a new ChartService.
func NewChartService(repo portsrepo.ChartRepositoryFacade) portssvc.ChartSvcFacade {
	return &ChartService{chartRepo: repo}
}

// Ensure ChartService implements the portssvc.ChartSvcFacade interface
var _ portssvc.ChartSvcFacade = (*ChartService)(nil)

// ListClasses returns all account classes of the tenant.
func (s *ChartService) ListClasses(ctx context.Context, tenantID string) ([]domain.AccountClass, error) {
	classes, err := s.chartRepo.ListClasses(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account classes: %w", err)
	}
	return classes, nil
}

// GetClassByNumber returns the class with the given OHADA number (1-9).
func (s *ChartService) GetClassByNumber(ctx context.Context, tenantID string, number int) (*domain.AccountClass, error) {
	if number < 1 || number > 9 {
		return nil, fmt.Errorf("%w: class number must be between 1 and 9", apperrors.ErrValidation)
	}
	class, err := s.chartRepo.FindClassByNumber(ctx, tenantID, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find class %d: %w", number, err)
	}
	return class, nil
}

// ListCategories returns the categories of the tenant, optionally for one class.
func (s *ChartService) ListCategories(ctx context.Context, tenantID string, classID string) ([]domain.AccountCategory, error) {
	categories, err := s.chartRepo.ListCategories(ctx, tenantID, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByCode returns the category with the given two-digit code.
func (s *ChartService) GetCategoryByCode(ctx context.Context, tenantID string, code string) (*domain.AccountCategory, error) {
	category, err := s.chartRepo.FindCategoryByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find category %s: %w", code, err)
	}
	return category, nil
}

// GetAccountByID returns the account with the given identifier.
func (s *ChartService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.chartRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode returns the account with the given code.
func (s *ChartService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	account, err := s.chartRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts returns a filtered, paginated account list.
func (s *ChartService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.AccountFilter{
		ClassID:     params.ClassID,
		CategoryID:  params.CategoryID,
		AccountType: domain.AccountType(params.AccountType),
		ParentID:    params.Parent,
		IsActive:    params.IsActive,
		Search:      params.Search,
	}
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.chartRepo.ListAccounts(ctx, tenantID, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ClassifyCode previews the classification and hierarchy the engine derives
// for one code, without touching the database.
func (s *ChartService) ClassifyCode(ctx context.Context, code string) (dto.ClassificationResponse, error) {
	hierarchy, err := ohada.ResolveHierarchy(code)
	if err != nil {
		return dto.ClassificationResponse{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	classification := ohada.Classify(code)
	return dto.ClassificationResponse{
		Code:                  code,
		AccountType:           classification.Type,
		Category:              classification.Category,
		RefFinancialStatement: classification.Ref,
		NormalBalance:         classification.NormalBalance,
		Level:                 hierarchy.Level,
		ParentCode:            hierarchy.ParentCode,
	}, nil
}

// CreateAccount creates a single account. The class and category are created
// lazily when missing, and the parent is linked when an account with the
// ancestor code already exists. Everything runs in one transaction.
func (s *ChartService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	padded, err := ohada.NormalizeCode(req.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if _, err := s.chartRepo.FindAccountByCode(ctx, tenantID, req.Code); err == nil {
		return nil, fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	classification := ohada.Classify(req.Code)
	hierarchy, err := ohada.ResolveHierarchy(req.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	classNumber := int(padded[0] - '0')
	now := time.Now()

	tx, err := s.chartRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = s.chartRepo.Rollback(ctx, tx)
		}
	}()

	class, _, err := s.chartRepo.GetOrCreateClassTx(ctx, tx, domain.AccountClass{
		ClassID:  uuid.NewString(),
		TenantID: tenantID,
		Number:   classNumber,
		Name:     ohada.ClassName(classNumber),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class %d: %w", classNumber, err)
	}

	categoryCode := padded[:2]
	category, _, err := s.chartRepo.GetOrCreateCategoryTx(ctx, tx, domain.AccountCategory{
		CategoryID: uuid.NewString(),
		TenantID:   tenantID,
		ClassID:    class.ClassID,
		Code:       categoryCode,
		Name:       ohada.CategoryFallbackName(categoryCode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %s: %w", categoryCode, err)
	}

	parentID := ""
	if hierarchy.ParentCode != "" {
		parent, perr := s.chartRepo.FindAccountByNormalizedCodeTx(ctx, tx, tenantID, hierarchy.ParentCode)
		switch {
		case perr == nil:
			parentID = parent.AccountID
		case errors.Is(perr, apperrors.ErrNotFound):
			// No ancestor account yet; the account stays a root until a
			// later import links it.
		default:
			err = fmt.Errorf("failed to look up parent account %s: %w", hierarchy.ParentCode, perr)
			return nil, err
		}
	}

	account := domain.Account{
		AccountID:             uuid.NewString(),
		TenantID:              tenantID,
		Code:                  req.Code,
		Name:                  req.Name,
		Description:           req.Description,
		ClassID:               class.ClassID,
		CategoryID:            category.CategoryID,
		ParentAccountID:       parentID,
		Level:                 hierarchy.Level,
		AccountType:           classification.Type,
		Category:              classification.Category,
		RefFinancialStatement: classification.Ref,
		NormalBalance:         classification.NormalBalance,
		IsActive:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err = s.chartRepo.SaveAccountTx(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	if err = s.chartRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account creation: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// UpdateAccount updates the mutable details of an account. Code, classification
// and hierarchy are immutable; re-importing is the way to reshape the chart.
func (s *ChartService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.chartRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %s for update: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()

	if err := s.chartRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. Accounts are never hard-deleted
// outside a purge so that historical entries keep resolving.
func (s *ChartService) DeactivateAccount(ctx context.Context, tenantID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.chartRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.chartRepo.DeactivateAccount(ctx, tenantID, accountID, time.Now()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
