package dto

import (
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdatePayRateRequest defines the full rate configuration for one user in
// one company. The upsert replaces the stored record.
type UpdatePayRateRequest struct {
	CompanyID        string          `json:"companyID" binding:"required"`
	HourlyRate       decimal.Decimal `json:"hourlyRate" binding:"gte=0"`
	DailyRate        decimal.Decimal `json:"dailyRate" binding:"gte=0"`
	CoordinationRate decimal.Decimal `json:"coordinationRate" binding:"gte=0"`
	NightRate        decimal.Decimal `json:"nightRate" binding:"gte=0"`
	IsGross          bool            `json:"isGross"`

	// DeductionSS left nil keeps the company default applicable.
	DeductionSS    *decimal.Decimal `json:"deductionSS,omitempty" binding:"omitempty,gte=0,lt=1"`
	DeductionIRPF  decimal.Decimal  `json:"deductionIRPF" binding:"gte=0,lt=1"`
	DeductionExtra decimal.Decimal  `json:"deductionExtra" binding:"gte=0,lt=1"`
}

// PayRateResponse defines data returned for a rate record.
type PayRateResponse struct {
	UserID           string           `json:"userID"`
	CompanyID        string           `json:"companyID"`
	HourlyRate       decimal.Decimal  `json:"hourlyRate"`
	DailyRate        decimal.Decimal  `json:"dailyRate"`
	CoordinationRate decimal.Decimal  `json:"coordinationRate"`
	NightRate        decimal.Decimal  `json:"nightRate"`
	IsGross          bool             `json:"isGross"`
	DeductionSS      *decimal.Decimal `json:"deductionSS,omitempty"`
	DeductionIRPF    decimal.Decimal  `json:"deductionIRPF"`
	DeductionExtra   decimal.Decimal  `json:"deductionExtra"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ToPayRateResponse converts domain.PayRate to DTO.
func ToPayRateResponse(r *domain.PayRate) PayRateResponse {
	return PayRateResponse{
		UserID:           r.UserID,
		CompanyID:        r.CompanyID,
		HourlyRate:       r.HourlyRate,
		DailyRate:        r.DailyRate,
		CoordinationRate: r.CoordinationRate,
		NightRate:        r.NightRate,
		IsGross:          r.IsGross,
		DeductionSS:      r.DeductionSS,
		DeductionIRPF:    r.DeductionIRPF,
		DeductionExtra:   r.DeductionExtra,
		UpdatedAt:        r.UpdatedAt,
	}
}
