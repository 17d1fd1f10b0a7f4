package domain

// TiersType classifies a third party.
type TiersType string

const (
	TiersCustomer TiersType = "CUSTOMER"
	TiersSupplier TiersType = "SUPPLIER"
	TiersEmployee TiersType = "EMPLOYEE"
	TiersOther    TiersType = "OTHER"
)

// TiersCodeLength is the padded length of a tiers code
// (3-digit account prefix plus at least 3 letters of the name).
const TiersCodeLength = 6

// Tiers is a third party (customer, supplier, employee) linked to a class-4 account.
// Unique per (tenant, code).
type Tiers struct {
	TiersID   string    `json:"tiersID"` // Primary Key (UUID)
	TenantID  string    `json:"tenantID"`
	Code      string    `json:"code"` // Formatted: 401/411/422 prefix + letters, padded to 6
	Name      string    `json:"name"`
	AccountID string    `json:"accountID"` // FK -> accounts, must be class 4
	Type      TiersType `json:"type"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TaxID     string    `json:"taxID"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"isActive"`
	AuditFields
}
