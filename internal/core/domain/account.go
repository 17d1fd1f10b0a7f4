package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "ASSET"
	Liability   AccountType = "LIABILITY"
	Equity      AccountType = "EQUITY"
	Revenue     AccountType = "REVENUE"
	Expense     AccountType = "EXPENSE"
	Special     AccountType = "SPECIAL"
	TypeUnknown AccountType = "UNKNOWN"
)

// ClassificationCategory distinguishes gross accounts from their
// amortization/depreciation contra accounts. Mainly relevant for classes 2-5.
type ClassificationCategory string

const (
	Gross                    ClassificationCategory = "GROSS"
	DepreciationAmortization ClassificationCategory = "DEPRECIATION_AMORTIZATION"
	CategoryUnknown          ClassificationCategory = "UNKNOWN"
)

// NormalBalance is the side (debit/credit) on which an account ordinarily increases.
type NormalBalance string

const (
	Debit          NormalBalance = "DEBIT"
	Credit         NormalBalance = "CREDIT"
	Variable       NormalBalance = "VARIABLE"
	BalanceUnknown NormalBalance = "UNKNOWN"
)

// RefUnknown is the financial statement reference assigned to codes that no
// classification rule maps.
const RefUnknown = "UNKNOWN"

// AccountClass is one of the OHADA top-level classes (1 to 9).
// Unique per (tenant, number); created lazily on first import.
type AccountClass struct {
	ClassID     string `json:"classID"`  // Primary Key (UUID)
	TenantID    string `json:"tenantID"` // Tenant scoping every entity
	Number      int    `json:"number"`   // 1 to 9
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// AccountCategory is a two-digit OHADA category (e.g. 10, 41, 60) inside a class.
// Unique per (tenant, code); created lazily on first import.
type AccountCategory struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	TenantID    string `json:"tenantID"`
	ClassID     string `json:"classID"` // FK -> account_classes.class_id
	Code        string `json:"code"`    // Two-digit code
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// Account is one entry of the OHADA chart of accounts.
// Unique per (tenant, code). ParentAccountID is nullable and set-null on parent deletion.
type Account struct {
	AccountID             string                 `json:"accountID"` // Primary Key (UUID)
	TenantID              string                 `json:"tenantID"`
	Code                  string                 `json:"code"`
	Name                  string                 `json:"name"`
	Description           string                 `json:"description"`
	ClassID               string                 `json:"classID"`         // FK -> account_classes
	CategoryID            string                 `json:"categoryID"`      // Nullable FK -> account_categories
	ParentAccountID       string                 `json:"parentAccountID"` // Nullable self-reference
	Level                 int                    `json:"level"`           // 1 to 4 for 8-digit codes
	AccountType           AccountType            `json:"accountType"`
	Category              ClassificationCategory `json:"category"`
	RefFinancialStatement string                 `json:"refFinancialStatement"`
	NormalBalance         NormalBalance          `json:"normalBalance"`
	IsActive              bool                   `json:"isActive"`
	AuditFields
}
