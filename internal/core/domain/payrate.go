package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayRate holds the configured rates and deduction overrides for one user in
// one company. Exactly one row exists per (user, company) pair; it is created
// lazily with zero rates when the user first joins the company.
type PayRate struct {
	UserID    string `json:"userID"`    // FK -> users.user_id
	CompanyID string `json:"companyID"` // FK -> companies.company_id

	HourlyRate       decimal.Decimal `json:"hourlyRate"`
	DailyRate        decimal.Decimal `json:"dailyRate"`
	CoordinationRate decimal.Decimal `json:"coordinationRate"` // Flat supplement, not scaled by duration
	NightRate        decimal.Decimal `json:"nightRate"`        // Flat supplement, not scaled by duration

	// IsGross marks the configured rates as pre-deduction amounts. When false
	// the computed gross and net are equal regardless of deduction fractions.
	IsGross bool `json:"isGross"`

	// DeductionSS overrides the company default when set.
	DeductionSS    *decimal.Decimal `json:"deductionSS,omitempty"`
	DeductionIRPF  decimal.Decimal  `json:"deductionIRPF"`
	DeductionExtra decimal.Decimal  `json:"deductionExtra"`

	UpdatedAt time.Time `json:"updatedAt"`
}
