package dto

import (
	"time"

	"github.com/plancompta/ohada_chart_app/internal/core/domain"
)

// CreateTiersRequest defines the data needed to create a third party.
type CreateTiersRequest struct {
	Code      string           `json:"code" binding:"required"`
	Name      string           `json:"name" binding:"required"`
	AccountID string           `json:"accountID" binding:"required"`
	Type      domain.TiersType `json:"type" binding:"required,oneof=CUSTOMER SUPPLIER EMPLOYEE OTHER"`
	Address   string           `json:"address"`
	Email     string           `json:"email" binding:"omitempty,email"`
	Phone     string           `json:"phone"`
	TaxID     string           `json:"taxID"`
	Notes     string           `json:"notes"`
}

// UpdateTiersRequest defines the mutable fields of a third party.
type UpdateTiersRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	TaxID   *string `json:"taxID"`
	Notes   *string `json:"notes"`
}

// ListTiersParams defines query parameters for listing third parties.
type ListTiersParams struct {
	Type   string `form:"type"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}

// TiersResponse defines the data returned for a third party.
type TiersResponse struct {
	TiersID       string           `json:"tiersID"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	AccountID     string           `json:"accountID"`
	Type          domain.TiersType `json:"type"`
	Address       string           `json:"address"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	TaxID         string           `json:"taxID"`
	Notes         string           `json:"notes"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToTiersResponse converts a domain.Tiers to its response DTO.
func ToTiersResponse(t *domain.Tiers) TiersResponse {
	return TiersResponse{
		TiersID:       t.TiersID,
		Code:          t.Code,
		Name:          t.Name,
		AccountID:     t.AccountID,
		Type:          t.Type,
		Address:       t.Address,
		Email:         t.Email,
		Phone:         t.Phone,
		TaxID:         t.TaxID,
		Notes:         t.Notes,
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToListTiersResponse converts a slice of domain.Tiers to response DTOs.
func ToListTiersResponse(tiers []domain.Tiers) []TiersResponse {
	res := make([]TiersResponse, len(tiers))
	for i := range tiers {
		res[i] = ToTiersResponse(&tiers[i])
	}
	return res
}
