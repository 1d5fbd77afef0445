package domain

import "github.com/shopspring/decimal"

// Company represents a tenant that users log work against.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	Name      string `json:"name"`
	FiscalID  string `json:"fiscalID"`
	// SocialSecurityDeduction is the company-wide default deduction fraction,
	// e.g. 0.0648 for 6.48%. A per-user rate record may override it.
	SocialSecurityDeduction decimal.Decimal `json:"socialSecurityDeduction"`
	Settings                map[string]any  `json:"settings"` // Configurable features, e.g. {"allow_tutorial": false}
	AuditFields
}
