package dto

import (
	"time"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// CreateFiscalYearRequest defines the data needed to create a fiscal year.
type CreateFiscalYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	Code      string    `json:"code" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// UpdateFiscalYearRequest defines the mutable fields of a fiscal year.
type UpdateFiscalYearRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
	IsLocked *bool   `json:"isLocked"`
}

// GeneratePeriodsRequest selects the period granularity to generate.
type GeneratePeriodsRequest struct {
	PeriodType domain.PeriodType `json:"periodType" binding:"omitempty,oneof=monthly quarterly"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID  string     `json:"fiscalYearID"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	IsClosed      bool       `json:"isClosed"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	IsActive      bool       `json:"isActive"`
	IsLocked      bool       `json:"isLocked"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its response DTO.
func ToFiscalYearResponse(y *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID:  y.FiscalYearID,
		Name:          y.Name,
		Code:          y.Code,
		StartDate:     y.StartDate,
		EndDate:       y.EndDate,
		IsClosed:      y.IsClosed,
		ClosedAt:      y.ClosedAt,
		IsActive:      y.IsActive,
		IsLocked:      y.IsLocked,
		CreatedAt:     y.CreatedAt,
		LastUpdatedAt: y.LastUpdatedAt,
	}
}

// ToListFiscalYearResponse converts a slice of domain.FiscalYear to response DTOs.
func ToListFiscalYearResponse(years []domain.FiscalYear) []FiscalYearResponse {
	res := make([]FiscalYearResponse, len(years))
	for i := range years {
		res[i] = ToFiscalYearResponse(&years[i])
	}
	return res
}

// FiscalPeriodResponse defines the data returned for a fiscal period.
type FiscalPeriodResponse struct {
	PeriodID     string    `json:"periodID"`
	FiscalYearID string    `json:"fiscalYearID"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Number       int       `json:"number"`
	IsClosed     bool      `json:"isClosed"`
	IsLocked     bool      `json:"isLocked"`
}

// ToFiscalPeriodResponse converts a domain.FiscalPeriod to its response DTO.
func ToFiscalPeriodResponse(p *domain.FiscalPeriod) FiscalPeriodResponse {
	return FiscalPeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYearID: p.FiscalYearID,
		Name:         p.Name,
		Code:         p.Code,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Number:       p.Number,
		IsClosed:     p.IsClosed,
		IsLocked:     p.IsLocked,
	}
}

// ToListFiscalPeriodResponse converts a slice of domain.FiscalPeriod to response DTOs.
func ToListFiscalPeriodResponse(periods []domain.FiscalPeriod) []FiscalPeriodResponse {
	res := make([]FiscalPeriodResponse, len(periods))
	for i := range periods {
		res[i] = ToFiscalPeriodResponse(&periods[i])
	}
	return res
}
