package dto

import "github.com/plancompta/ohada_chart_app/internal/core/domain"

// ImportRecord is one raw chart seed record. The JSON key "libelle" matches
// the OHADA seed files this service is fed with.
type ImportRecord struct {
	Code  string `json:"code"`
	Label string `json:"libelle"`
}

// ImportOptions controls a chart import run.
// Purge and Replace both delete the tenant's existing chart before importing;
// Purge additionally reports the deletion counts. Replace is kept for
// compatibility with the older import flow.
type ImportOptions struct {
	Purge   bool `json:"purge"`
	Replace bool `json:"replace"`
}

// ImportChartRequest is the request body of the bulk import endpoint.
type ImportChartRequest struct {
	Records []ImportRecord `json:"records" binding:"required,min=1"`
	ImportOptions
}

// ImportNestedChartRequest carries the legacy nested chart format: keys encode
// "<code> <name>" and nesting encodes the parent/child relationship.
type ImportNestedChartRequest struct {
	Chart map[string]any `json:"chart" binding:"required"`
	ImportOptions
}

// ImportSummaryResponse reports what an import run did.
type ImportSummaryResponse struct {
	Processed         int                  `json:"processed"`
	ClassesCreated    int                  `json:"classesCreated"`
	CategoriesCreated int                  `json:"categoriesCreated"`
	AccountsCreated   int                  `json:"accountsCreated"`
	AccountsUpdated   int                  `json:"accountsUpdated"`
	ParentsLinked     int                  `json:"parentsLinked"`
	Purged            *PurgeCountsResponse `json:"purged,omitempty"`
}

// PurgeCountsResponse reports how many rows a purge removed.
type PurgeCountsResponse struct {
	Accounts   int64 `json:"accounts"`
	Categories int64 `json:"categories"`
	Classes    int64 `json:"classes"`
}

// ToImportSummaryResponse converts a domain.ImportSummary to its response DTO.
func ToImportSummaryResponse(s domain.ImportSummary) ImportSummaryResponse {
	resp := ImportSummaryResponse{
		Processed:         s.Processed,
		ClassesCreated:    s.ClassesCreated,
		CategoriesCreated: s.CategoriesCreated,
		AccountsCreated:   s.AccountsCreated,
		AccountsUpdated:   s.AccountsUpdated,
		ParentsLinked:     s.ParentsLinked,
	}
	if s.Purged != nil {
		resp.Purged = &PurgeCountsResponse{
			Accounts:   s.Purged.Accounts,
			Categories: s.Purged.Categories,
			Classes:    s.Purged.Classes,
		}
	}
	return resp
}
