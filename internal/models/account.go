package models

// AccountClass is the DB representation of an OHADA class row.
type AccountClass struct {
	ClassID     string `db:"class_id"`
	TenantID    string `db:"tenant_id"`
	Number      int    `db:"number"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// AccountCategory is the DB representation of a two-digit category row.
type AccountCategory struct {
	CategoryID  string `db:"category_id"`
	TenantID    string `db:"tenant_id"`
	ClassID     string `db:"class_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// Account is the DB representation of a chart-of-accounts row.
// CategoryID and ParentAccountID are nullable foreign keys held as strings;
// the repository maps empty string to NULL.
type Account struct {
	AccountID             string `db:"account_id"`
	TenantID              string `db:"tenant_id"`
	Code                  string `db:"code"`
	Name                  string `db:"name"`
	Description           string `db:"description"`
	ClassID               string `db:"class_id"`
	CategoryID            string `db:"category_id"`
	ParentAccountID       string `db:"parent_account_id"`
	Level                 int    `db:"level"`
	AccountType           string `db:"account_type"`
	Category              string `db:"classification_category"`
	RefFinancialStatement string `db:"ref_financial_statement"`
	NormalBalance         string `db:"normal_balance"`
	IsActive              bool   `db:"is_active"`
	AuditFields
}
