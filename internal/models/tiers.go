package models

// Tiers is the DB representation of a third-party row.
type Tiers struct {
	TiersID   string `db:"tiers_id"`
	TenantID  string `db:"tenant_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	AccountID string `db:"account_id"`
	Type      string `db:"type"`
	Address   string `db:"address"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	TaxID     string `db:"tax_id"`
	Notes     string `db:"notes"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
