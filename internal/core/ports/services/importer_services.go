package services

import (
	"context"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
	"github.com/plancompta/ohada_chart_app/internal/dto"
)

// ChartImporterSvc orchestrates bulk chart imports and purges.
// One call is one transaction: an import either commits fully or rolls back.
type ChartImporterSvc interface {
	// ImportChart imports flat (code, label) records for a tenant.
	ImportChart(ctx context.Context, tenantID string, records []dto.ImportRecord, opts dto.ImportOptions) (domain.ImportSummary, error)

	// ImportNestedChart imports the legacy nested chart format, where keys
	// encode "<code> <name>" and nesting encodes the parent/child relation.
	ImportNestedChart(ctx context.Context, tenantID string, chart map[string]any, opts dto.ImportOptions) (domain.ImportSummary, error)

	// PurgeChart hard-deletes all accounts, categories and classes of a tenant.
	PurgeChart(ctx context.Context, tenantID string) (domain.PurgeResult, error)
}
