package models

import "time"

// FiscalYear is the DB representation of a fiscal year row.
type FiscalYear struct {
	FiscalYearID string     `db:"fiscal_year_id"`
	TenantID     string     `db:"tenant_id"`
	Name         string     `db:"name"`
	Code         string     `db:"code"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsClosed     bool       `db:"is_closed"`
	ClosedAt     *time.Time `db:"closed_at"`
	IsActive     bool       `db:"is_active"`
	IsLocked     bool       `db:"is_locked"`
	AuditFields
}

// FiscalPeriod is the DB representation of a fiscal period row.
type FiscalPeriod struct {
	PeriodID     string    `db:"period_id"`
	TenantID     string    `db:"tenant_id"`
	FiscalYearID string    `db:"fiscal_year_id"`
	Name         string    `db:"name"`
	Code         string    `db:"code"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Number       int       `db:"number"`
	IsClosed     bool      `db:"is_closed"`
	IsLocked     bool      `db:"is_locked"`
	AuditFields
}
