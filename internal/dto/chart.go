package dto

import (
	"time"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a single account.
// Classification and hierarchy fields are derived from the code, not supplied.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required,accountcode"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	ClassID     string `form:"classID"`
	CategoryID  string `form:"categoryID"`
	AccountType string `form:"type"`
	Parent      string `form:"parent"` // Account ID, or "null" for root accounts
	IsActive    *bool  `form:"isActive"`
	Search      string `form:"q"`
	Limit       int    `form:"limit,default=50"`
	Offset      int    `form:"offset,default=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID             string                        `json:"accountID"`
	Code                  string                        `json:"code"`
	Name                  string                        `json:"name"`
	Description           string                        `json:"description"`
	ClassID               string                        `json:"classID"`
	CategoryID            string                        `json:"categoryID"`
	ParentAccountID       string                        `json:"parentAccountID"`
	Level                 int                           `json:"level"`
	AccountType           domain.AccountType            `json:"accountType"`
	Category              domain.ClassificationCategory `json:"category"`
	RefFinancialStatement string                        `json:"refFinancialStatement"`
	NormalBalance         domain.NormalBalance          `json:"normalBalance"`
	IsActive              bool                          `json:"isActive"`
	CreatedAt             time.Time                     `json:"createdAt"`
	LastUpdatedAt         time.Time                     `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:             acc.AccountID,
		Code:                  acc.Code,
		Name:                  acc.Name,
		Description:           acc.Description,
		ClassID:               acc.ClassID,
		CategoryID:            acc.CategoryID,
		ParentAccountID:       acc.ParentAccountID,
		Level:                 acc.Level,
		AccountType:           acc.AccountType,
		Category:              acc.Category,
		RefFinancialStatement: acc.RefFinancialStatement,
		NormalBalance:         acc.NormalBalance,
		IsActive:              acc.IsActive,
		CreatedAt:             acc.CreatedAt,
		LastUpdatedAt:         acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ClassResponse defines the data returned for an account class.
type ClassResponse struct {
	ClassID       string    `json:"classID"`
	Number        int       `json:"number"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToClassResponse converts a domain.AccountClass to ClassResponse DTO
func ToClassResponse(c *domain.AccountClass) ClassResponse {
	return ClassResponse{
		ClassID:       c.ClassID,
		Number:        c.Number,
		Name:          c.Name,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClassResponse converts a slice of domain.AccountClass to response DTOs
func ToListClassResponse(classes []domain.AccountClass) []ClassResponse {
	res := make([]ClassResponse, len(classes))
	for i := range classes {
		res[i] = ToClassResponse(&classes[i])
	}
	return res
}

// CategoryResponse defines the data returned for an account category.
type CategoryResponse struct {
	CategoryID    string    `json:"categoryID"`
	ClassID       string    `json:"classID"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.AccountCategory to CategoryResponse DTO
func ToCategoryResponse(c *domain.AccountCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		ClassID:       c.ClassID,
		Code:          c.Code,
		Name:          c.Name,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.AccountCategory to response DTOs
func ToListCategoryResponse(categories []domain.AccountCategory) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}

// ClassificationResponse exposes the raw engine output for one code.
// Useful to preview how an account would be classified before import.
type ClassificationResponse struct {
	Code                  string                        `json:"code"`
	AccountType           domain.AccountType            `json:"accountType"`
	Category              domain.ClassificationCategory `json:"category"`
	RefFinancialStatement string                        `json:"refFinancialStatement"`
	NormalBalance         domain.NormalBalance          `json:"normalBalance"`
	Level                 int                           `json:"level"`
	ParentCode            string                        `json:"parentCode"`
}
