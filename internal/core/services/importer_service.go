package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/plancompta/ohada_chart_app/internal/apperrors"
	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	portsrepo "github.com/plancompta/ohada_chart_app/internal/core/ports/repositories"
	portssvc "github.com/plancompta/ohada_chart_app/internal/core/ports/services"
	"github.com/plancompta/ohada_chart_app/internal/dto"
	"github.com/plancompta/ohada_chart_app/internal/middleware"
	"github.com/plancompta/ohada_chart_app/internal/ohada"
)

// ChartImporterService loads full OHADA charts for a tenant. One call is one
// transaction: any failure rolls the whole run back.
type ChartImporterService struct {
	chartRepo portsrepo.ChartRepositoryFacade
}

// NewChartImporterService creates a new ChartImporterService.
func NewChartImporterService(repo portsrepo.ChartRepositoryFacade) portssvc.ChartImporterSvc {
	return &ChartImporterService{chartRepo: repo}
}

// Ensure ChartImporterService implements the portssvc.ChartImporterSvc interface
var _ portssvc.ChartImporterSvc = (*ChartImporterService)(nil)

// importRun holds the per-run caches. Classes and categories are cached by
// natural key so each is resolved at most once per run; accounts are cached by
// their zero-padded code for the parent-linking pass.
type importRun struct {
	tenantID   string
	tx         pgx.Tx
	now        time.Time
	classes    map[int]*domain.AccountClass
	categories map[string]*domain.AccountCategory
	accounts   map[string]*domain.Account // keyed by padded 8-digit code
	summary    domain.ImportSummary
}

type pendingParent struct {
	accountID  string
	parentCode string // padded 8-digit ancestor code
}

func (s *ChartImporterService) newRun(tenantID string, tx pgx.Tx) *importRun {
	return &importRun{
		tenantID:   tenantID,
		tx:         tx,
		now:        time.Now(),
		classes:    make(map[int]*domain.AccountClass),
		categories: make(map[string]*domain.AccountCategory),
		accounts:   make(map[string]*domain.Account),
	}
}

// ImportChart imports flat (code, label) records. Classes and categories are
// created lazily, accounts are upserted by (tenant, code), and parents are
// linked in a second pass so record order never matters.
func (s *ChartImporterService) ImportChart(ctx context.Context, tenantID string, records []dto.ImportRecord, opts dto.ImportOptions) (domain.ImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := uuid.Parse(tenantID); err != nil {
		return domain.ImportSummary{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTenant, tenantID)
	}
	if err := validateRecords(records); err != nil {
		return domain.ImportSummary{}, err
	}

	tx, err := s.chartRepo.Begin(ctx)
	if err != nil {
		return domain.ImportSummary{}, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	run := s.newRun(tenantID, tx)

	summary, err := s.runFlatImport(ctx, run, records, opts)
	if err != nil {
		_ = s.chartRepo.Rollback(ctx, tx)
		logger.Error("Chart import rolled back", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return domain.ImportSummary{}, err
	}
	if err := s.chartRepo.Commit(ctx, tx); err != nil {
		return domain.ImportSummary{}, fmt.Errorf("failed to commit import: %w", err)
	}

	logger.Info("Chart import committed",
		slog.String("tenant_id", tenantID),
		slog.Int("processed", summary.Processed),
		slog.Int("accounts_created", summary.AccountsCreated),
		slog.Int("accounts_updated", summary.AccountsUpdated),
		slog.Int("parents_linked", summary.ParentsLinked))
	return summary, nil
}

func (s *ChartImporterService) runFlatImport(ctx context.Context, run *importRun, records []dto.ImportRecord, opts dto.ImportOptions) (domain.ImportSummary, error) {
	if opts.Purge || opts.Replace {
		counts, err := s.chartRepo.PurgeChartTx(ctx, run.tx, run.tenantID)
		if err != nil {
			return domain.ImportSummary{}, fmt.Errorf("failed to purge existing chart: %w", err)
		}
		if opts.Purge {
			run.summary.Purged = &domain.PurgeResult{
				Accounts:   counts.Accounts,
				Categories: counts.Categories,
				Classes:    counts.Classes,
			}
		}
	}

	// First pass: upsert every account. Parents are resolved afterwards so
	// that a child appearing before its parent in the file still links.
	var pending []pendingParent
	for _, rec := range records {
		account, parentCode, err := s.importRecord(ctx, run, rec, records)
		if err != nil {
			return domain.ImportSummary{}, err
		}
		if parentCode != "" {
			pending = append(pending, pendingParent{accountID: account.AccountID, parentCode: parentCode})
		}
	}

	// Second pass: link parents by padded code within this run.
	for _, p := range pending {
		parent, ok := run.accounts[p.parentCode]
		if !ok {
			continue
		}
		if err := s.chartRepo.SetAccountParentTx(ctx, run.tx, run.tenantID, p.accountID, parent.AccountID); err != nil {
			return domain.ImportSummary{}, fmt.Errorf("failed to link account %s to parent %s: %w", p.accountID, parent.AccountID, err)
		}
		run.summary.ParentsLinked++
	}

	run.summary.Processed = len(records)
	return run.summary, nil
}

// importRecord resolves class, category, classification and hierarchy for one
// record and upserts the account. It returns the stored account and the padded
// ancestor code, empty for level-1 accounts.
func (s *ChartImporterService) importRecord(ctx context.Context, run *importRun, rec dto.ImportRecord, all []dto.ImportRecord) (*domain.Account, string, error) {
	code := strings.TrimSpace(rec.Code)
	padded, err := ohada.NormalizeCode(code)
	if err != nil {
		return nil, "", fmt.Errorf("%w: code %q: %s", apperrors.ErrInvalidRecord, rec.Code, err.Error())
	}
	classNumber := int(padded[0] - '0')

	class, err := s.resolveClass(ctx, run, classNumber)
	if err != nil {
		return nil, "", err
	}
	category, err := s.resolveCategory(ctx, run, class, padded[:2], all)
	if err != nil {
		return nil, "", err
	}

	classification := ohada.Classify(code)
	hierarchy, err := ohada.ResolveHierarchy(code)
	if err != nil {
		return nil, "", fmt.Errorf("%w: code %q: %s", apperrors.ErrInvalidRecord, rec.Code, err.Error())
	}

	account := domain.Account{
		TenantID:              run.tenantID,
		Code:                  code,
		Name:                  strings.TrimSpace(rec.Label),
		ClassID:               class.ClassID,
		CategoryID:            category.CategoryID,
		Level:                 hierarchy.Level,
		AccountType:           classification.Type,
		Category:              classification.Category,
		RefFinancialStatement: classification.Ref,
		NormalBalance:         classification.NormalBalance,
		IsActive:              true,
	}

	existing, err := s.chartRepo.FindAccountByCodeTx(ctx, run.tx, run.tenantID, code)
	switch {
	case err == nil:
		account.AccountID = existing.AccountID
		account.CreatedAt = existing.CreatedAt
		account.LastUpdatedAt = run.now
		if err := s.chartRepo.UpdateAccountTx(ctx, run.tx, account); err != nil {
			return nil, "", fmt.Errorf("failed to update account %s: %w", code, err)
		}
		run.summary.AccountsUpdated++
	case errors.Is(err, apperrors.ErrNotFound):
		account.AccountID = uuid.NewString()
		account.CreatedAt = run.now
		account.LastUpdatedAt = run.now
		if err := s.chartRepo.SaveAccountTx(ctx, run.tx, account); err != nil {
			return nil, "", fmt.Errorf("failed to save account %s: %w", code, err)
		}
		run.summary.AccountsCreated++
	default:
		return nil, "", fmt.Errorf("failed to look up account %s: %w", code, err)
	}

	run.accounts[padded] = &account
	return &account, hierarchy.ParentCode, nil
}

func (s *ChartImporterService) resolveClass(ctx context.Context, run *importRun, number int) (*domain.AccountClass, error) {
	if class, ok := run.classes[number]; ok {
		return class, nil
	}
	class, created, err := s.chartRepo.GetOrCreateClassTx(ctx, run.tx, domain.AccountClass{
		ClassID:  uuid.NewString(),
		TenantID: run.tenantID,
		Number:   number,
		Name:     ohada.ClassName(number),
		AuditFields: domain.AuditFields{
			CreatedAt:     run.now,
			LastUpdatedAt: run.now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class %d: %w", number, err)
	}
	if created {
		run.summary.ClassesCreated++
	}
	run.classes[number] = class
	return class, nil
}

func (s *ChartImporterService) resolveCategory(ctx context.Context, run *importRun, class *domain.AccountClass, code string, all []dto.ImportRecord) (*domain.AccountCategory, error) {
	if category, ok := run.categories[code]; ok {
		return category, nil
	}
	category, created, err := s.chartRepo.GetOrCreateCategoryTx(ctx, run.tx, domain.AccountCategory{
		CategoryID: uuid.NewString(),
		TenantID:   run.tenantID,
		ClassID:    class.ClassID,
		Code:       code,
		Name:       categoryName(code, all),
		AuditFields: domain.AuditFields{
			CreatedAt:     run.now,
			LastUpdatedAt: run.now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %s: %w", code, err)
	}
	if created {
		run.summary.CategoriesCreated++
	}
	run.categories[code] = category
	return category, nil
}

// categoryName names a category after the record whose code is exactly the
// two-digit category code, when the seed file carries one. Otherwise the name
// is synthesized from the code.
func categoryName(categoryCode string, records []dto.ImportRecord) string {
	for _, rec := range records {
		if strings.TrimSpace(rec.Code) == categoryCode {
			return strings.TrimSpace(rec.Label)
		}
	}
	return ohada.CategoryFallbackName(categoryCode)
}

// validateRecords rejects the whole batch when any record is unusable, so a
// bad seed file never half-imports.
func validateRecords(records []dto.ImportRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records to import", apperrors.ErrValidation)
	}
	for i, rec := range records {
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			return fmt.Errorf("%w: record %d has no code", apperrors.ErrInvalidRecord, i)
		}
		if strings.TrimSpace(rec.Label) == "" {
			return fmt.Errorf("%w: record %d (code %s) has no label", apperrors.ErrInvalidRecord, i, code)
		}
		if _, err := ohada.NormalizeCode(code); err != nil {
			return fmt.Errorf("%w: record %d: %s", apperrors.ErrInvalidRecord, i, err.Error())
		}
	}
	return nil
}

// ImportNestedChart imports the legacy nested chart format. Top-level keys are
// "<number> - <class name>", inner keys are "<code> <name>" for categories or
// bare codes mapping to a name string for leaf accounts. Nesting, not code
// structure, decides the parent and the level here.
func (s *ChartImporterService) ImportNestedChart(ctx context.Context, tenantID string, chart map[string]any, opts dto.ImportOptions) (domain.ImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := uuid.Parse(tenantID); err != nil {
		return domain.ImportSummary{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTenant, tenantID)
	}
	if len(chart) == 0 {
		return domain.ImportSummary{}, fmt.Errorf("%w: empty chart", apperrors.ErrValidation)
	}

	tx, err := s.chartRepo.Begin(ctx)
	if err != nil {
		return domain.ImportSummary{}, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	run := s.newRun(tenantID, tx)

	summary, err := s.runNestedImport(ctx, run, chart, opts)
	if err != nil {
		_ = s.chartRepo.Rollback(ctx, tx)
		logger.Error("Nested chart import rolled back", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return domain.ImportSummary{}, err
	}
	if err := s.chartRepo.Commit(ctx, tx); err != nil {
		return domain.ImportSummary{}, fmt.Errorf("failed to commit import: %w", err)
	}

	logger.Info("Nested chart import committed",
		slog.String("tenant_id", tenantID),
		slog.Int("accounts_created", summary.AccountsCreated),
		slog.Int("accounts_updated", summary.AccountsUpdated))
	return summary, nil
}

func (s *ChartImporterService) runNestedImport(ctx context.Context, run *importRun, chart map[string]any, opts dto.ImportOptions) (domain.ImportSummary, error) {
	if opts.Purge || opts.Replace {
		counts, err := s.chartRepo.PurgeChartTx(ctx, run.tx, run.tenantID)
		if err != nil {
			return domain.ImportSummary{}, fmt.Errorf("failed to purge existing chart: %w", err)
		}
		if opts.Purge {
			run.summary.Purged = &domain.PurgeResult{
				Accounts:   counts.Accounts,
				Categories: counts.Categories,
				Classes:    counts.Classes,
			}
		}
	}

	for _, classKey := range sortedKeys(chart) {
		classNumber, className, err := splitClassKey(classKey)
		if err != nil {
			return domain.ImportSummary{}, err
		}
		class, err := s.resolveNestedClass(ctx, run, classNumber, className)
		if err != nil {
			return domain.ImportSummary{}, err
		}
		classType := ohada.ClassDefaultType(classNumber)

		classData, ok := chart[classKey].(map[string]any)
		if !ok {
			return domain.ImportSummary{}, fmt.Errorf("%w: class %q must map to an object", apperrors.ErrInvalidRecord, classKey)
		}

		for _, entryKey := range sortedKeys(classData) {
			switch value := classData[entryKey].(type) {
			case map[string]any:
				// A category with sub-accounts. The category code doubles
				// as the code of its level-1 root account.
				catCode, catName := splitCodeName(entryKey)
				category, err := s.resolveNestedCategory(ctx, run, class, catCode, catName)
				if err != nil {
					return domain.ImportSummary{}, err
				}
				parent, err := s.upsertNestedAccount(ctx, run, nestedAccount{
					code: catCode, name: catName,
					classID: class.ClassID, categoryID: category.CategoryID,
					accountType: classType, level: 1,
				})
				if err != nil {
					return domain.ImportSummary{}, err
				}
				if err := s.importSubAccounts(ctx, run, value, parent, class.ClassID, category.CategoryID, classType, 2); err != nil {
					return domain.ImportSummary{}, err
				}
			case string:
				// A simple level-1 account with no category.
				if _, err := s.upsertNestedAccount(ctx, run, nestedAccount{
					code: strings.TrimSpace(entryKey), name: value,
					classID: class.ClassID,
					accountType: classType, level: 1,
				}); err != nil {
					return domain.ImportSummary{}, err
				}
			default:
				return domain.ImportSummary{}, fmt.Errorf("%w: entry %q has unsupported value type", apperrors.ErrInvalidRecord, entryKey)
			}
		}
	}

	run.summary.Processed = run.summary.AccountsCreated + run.summary.AccountsUpdated
	return run.summary, nil
}

func (s *ChartImporterService) importSubAccounts(ctx context.Context, run *importRun, data map[string]any, parent *domain.Account, classID, categoryID string, accountType domain.AccountType, level int) error {
	for _, code := range sortedKeys(data) {
		switch value := data[code].(type) {
		case map[string]any:
			sub, err := s.upsertNestedAccount(ctx, run, nestedAccount{
				code: strings.TrimSpace(code), name: strings.TrimSpace(code),
				classID: classID, categoryID: categoryID,
				parentID: parent.AccountID, accountType: accountType, level: level,
			})
			if err != nil {
				return err
			}
			if err := s.importSubAccounts(ctx, run, value, sub, classID, categoryID, accountType, level+1); err != nil {
				return err
			}
		case string:
			if _, err := s.upsertNestedAccount(ctx, run, nestedAccount{
				code: strings.TrimSpace(code), name: value,
				classID: classID, categoryID: categoryID,
				parentID: parent.AccountID, accountType: accountType, level: level,
			}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: entry %q has unsupported value type", apperrors.ErrInvalidRecord, code)
		}
	}
	return nil
}

type nestedAccount struct {
	code        string
	name        string
	classID     string
	categoryID  string
	parentID    string
	accountType domain.AccountType
	level       int
}

func (s *ChartImporterService) upsertNestedAccount(ctx context.Context, run *importRun, n nestedAccount) (*domain.Account, error) {
	if n.code == "" {
		return nil, fmt.Errorf("%w: empty account code", apperrors.ErrInvalidRecord)
	}
	padded, err := ohada.NormalizeCode(n.code)
	if err != nil {
		return nil, fmt.Errorf("%w: code %q: %s", apperrors.ErrInvalidRecord, n.code, err.Error())
	}
	classification := ohada.Classify(n.code)

	account := domain.Account{
		TenantID:              run.tenantID,
		Code:                  n.code,
		Name:                  strings.TrimSpace(n.name),
		ClassID:               n.classID,
		CategoryID:            n.categoryID,
		ParentAccountID:       n.parentID,
		Level:                 n.level,
		AccountType:           n.accountType,
		Category:              classification.Category,
		RefFinancialStatement: classification.Ref,
		NormalBalance:         classification.NormalBalance,
		IsActive:              true,
	}

	existing, err := s.chartRepo.FindAccountByCodeTx(ctx, run.tx, run.tenantID, n.code)
	switch {
	case err == nil:
		account.AccountID = existing.AccountID
		account.CreatedAt = existing.CreatedAt
		account.LastUpdatedAt = run.now
		if err := s.chartRepo.UpdateAccountTx(ctx, run.tx, account); err != nil {
			return nil, fmt.Errorf("failed to update account %s: %w", n.code, err)
		}
		run.summary.AccountsUpdated++
	case errors.Is(err, apperrors.ErrNotFound):
		account.AccountID = uuid.NewString()
		account.CreatedAt = run.now
		account.LastUpdatedAt = run.now
		if err := s.chartRepo.SaveAccountTx(ctx, run.tx, account); err != nil {
			return nil, fmt.Errorf("failed to save account %s: %w", n.code, err)
		}
		run.summary.AccountsCreated++
	default:
		return nil, fmt.Errorf("failed to look up account %s: %w", n.code, err)
	}
	if n.parentID != "" {
		run.summary.ParentsLinked++
	}
	run.accounts[padded] = &account
	return &account, nil
}

func (s *ChartImporterService) resolveNestedClass(ctx context.Context, run *importRun, number int, name string) (*domain.AccountClass, error) {
	if class, ok := run.classes[number]; ok {
		return class, nil
	}
	class, created, err := s.chartRepo.GetOrCreateClassTx(ctx, run.tx, domain.AccountClass{
		ClassID:  uuid.NewString(),
		TenantID: run.tenantID,
		Number:   number,
		Name:     name,
		AuditFields: domain.AuditFields{
			CreatedAt:     run.now,
			LastUpdatedAt: run.now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve class %d: %w", number, err)
	}
	if created {
		run.summary.ClassesCreated++
	}
	run.classes[number] = class
	return class, nil
}

func (s *ChartImporterService) resolveNestedCategory(ctx context.Context, run *importRun, class *domain.AccountClass, code, name string) (*domain.AccountCategory, error) {
	if category, ok := run.categories[code]; ok {
		return category, nil
	}
	category, created, err := s.chartRepo.GetOrCreateCategoryTx(ctx, run.tx, domain.AccountCategory{
		CategoryID: uuid.NewString(),
		TenantID:   run.tenantID,
		ClassID:    class.ClassID,
		Code:       code,
		Name:       name,
		AuditFields: domain.AuditFields{
			CreatedAt:     run.now,
			LastUpdatedAt: run.now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %s: %w", code, err)
	}
	if created {
		run.summary.CategoriesCreated++
	}
	run.categories[code] = category
	return category, nil
}

// splitClassKey parses a top-level class key like "1 - Comptes de capitaux".
// Without a " - " separator the whole key doubles as the name.
func splitClassKey(key string) (int, string, error) {
	fields := strings.Fields(key)
	if len(fields) == 0 || len(fields[0]) != 1 || fields[0][0] < '1' || fields[0][0] > '9' {
		return 0, "", fmt.Errorf("%w: class key %q must start with the class number", apperrors.ErrInvalidRecord, key)
	}
	number := int(fields[0][0] - '0')
	name := key
	if _, after, found := strings.Cut(key, " - "); found {
		name = strings.TrimSpace(after)
	}
	return number, name, nil
}

// splitCodeName parses a "<code> <name>" key. A key without a space is both
// code and name.
func splitCodeName(key string) (string, string) {
	code, name, found := strings.Cut(strings.TrimSpace(key), " ")
	if !found {
		return key, key
	}
	return code, strings.TrimSpace(name)
}

// sortedKeys returns map keys in ascending order. JSON objects decode into Go
// maps with random iteration order; sorting keeps import results deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PurgeChart hard-deletes the tenant's whole chart in one transaction and
// reports how many rows went away.
func (s *ChartImporterService) PurgeChart(ctx context.Context, tenantID string) (domain.PurgeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := uuid.Parse(tenantID); err != nil {
		return domain.PurgeResult{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTenant, tenantID)
	}

	tx, err := s.chartRepo.Begin(ctx)
	if err != nil {
		return domain.PurgeResult{}, fmt.Errorf("failed to begin purge transaction: %w", err)
	}
	counts, err := s.chartRepo.PurgeChartTx(ctx, tx, tenantID)
	if err != nil {
		_ = s.chartRepo.Rollback(ctx, tx)
		return domain.PurgeResult{}, fmt.Errorf("failed to purge chart: %w", err)
	}
	if err := s.chartRepo.Commit(ctx, tx); err != nil {
		return domain.PurgeResult{}, fmt.Errorf("failed to commit purge: %w", err)
	}

	logger.Info("Chart purged",
		slog.String("tenant_id", tenantID),
		slog.Int64("accounts", counts.Accounts),
		slog.Int64("categories", counts.Categories),
		slog.Int64("classes", counts.Classes))
	return domain.PurgeResult{
		Accounts:   counts.Accounts,
		Categories: counts.Categories,
		Classes:    counts.Classes,
	}, nil
}
