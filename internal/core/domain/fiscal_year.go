package domain

import "time"

// PeriodType selects how fiscal periods are generated for a fiscal year.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
)

// FiscalYear represents one accounting exercise for a tenant.
// Unique per (tenant, code); years of one tenant must not overlap.
type FiscalYear struct {
	FiscalYearID string     `json:"fiscalYearID"` // Primary Key (UUID)
	TenantID     string     `json:"tenantID"`
	Name         string     `json:"name"`
	Code         string     `json:"code"` // e.g. FY2023
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedAt     *time.Time `json:"closedAt"`
	IsActive     bool       `json:"isActive"`
	IsLocked     bool       `json:"isLocked"` // Blocks any further transaction changes
	AuditFields
}

// FiscalPeriod is one slice (month or quarter) of a fiscal year.
// Number is unique within its fiscal year.
type FiscalPeriod struct {
	PeriodID     string    `json:"periodID"` // Primary Key (UUID)
	TenantID     string    `json:"tenantID"`
	FiscalYearID string    `json:"fiscalYearID"` // FK -> fiscal_years
	Name         string    `json:"name"`
	Code         string    `json:"code"` // e.g. FY2023-M01 or FY2023-Q1
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Number       int       `json:"number"`
	IsClosed     bool      `json:"isClosed"`
	IsLocked     bool      `json:"isLocked"`
	AuditFields
}
