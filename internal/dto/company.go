package dto

import (
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name                    string           `json:"name" binding:"required"`
	FiscalID                string           `json:"fiscalID"`
	SocialSecurityDeduction *decimal.Decimal `json:"socialSecurityDeduction" binding:"omitempty,gte=0,lt=1"`
	Settings                map[string]any   `json:"settings"`
}

// UpdateCompanyRequest defines the editable company fields. Nil fields are
// left unchanged; a non-nil Settings replaces the whole bag.
type UpdateCompanyRequest struct {
	Name                    *string          `json:"name,omitempty"`
	FiscalID                *string          `json:"fiscalID,omitempty"`
	SocialSecurityDeduction *decimal.Decimal `json:"socialSecurityDeduction,omitempty" binding:"omitempty,gte=0,lt=1"`
	Settings                *map[string]any  `json:"settings,omitempty"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID               string          `json:"companyID"`
	Name                    string          `json:"name"`
	FiscalID                string          `json:"fiscalID"`
	SocialSecurityDeduction decimal.Decimal `json:"socialSecurityDeduction"`
	Settings                map[string]any  `json:"settings"`
	CreatedAt               time.Time       `json:"createdAt"`
	LastUpdatedAt           time.Time       `json:"lastUpdatedAt"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:               c.CompanyID,
		Name:                    c.Name,
		FiscalID:                c.FiscalID,
		SocialSecurityDeduction: c.SocialSecurityDeduction,
		Settings:                c.Settings,
		CreatedAt:               c.CreatedAt,
		LastUpdatedAt:           c.LastUpdatedAt,
	}
}

// UserCompanyResponse is a company as seen by one of its members: the
// member's role plus the effective settings (company settings overridden
// key-by-key by membership settings).
type UserCompanyResponse struct {
	CompanyResponse
	Role     string         `json:"role"`
	Settings map[string]any `json:"settings"`
}

// ToUserCompanyResponse converts a company plus the caller's membership to DTO.
func ToUserCompanyResponse(c *domain.Company, m *domain.Membership) UserCompanyResponse {
	resp := UserCompanyResponse{
		CompanyResponse: ToCompanyResponse(c),
		Role:            string(m.Role),
		Settings:        m.EffectiveSettings(*c),
	}
	resp.CompanyResponse.Settings = resp.Settings
	return resp
}
