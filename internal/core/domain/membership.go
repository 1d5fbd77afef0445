package domain

import (
	"strings"
	"time"
)

// MemberStatus is the lifecycle state of a user's membership in a company.
// Valid transitions: pending -> active, pending -> rejected, active -> rejected.
type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusActive   MemberStatus = "active"
	MemberStatusRejected MemberStatus = "rejected"
)

// CompanyRole is the role a user holds within a single company.
type CompanyRole string

const (
	CompanyRoleWorker  CompanyRole = "worker"
	CompanyRoleManager CompanyRole = "manager"
	CompanyRoleAdmin   CompanyRole = "admin"
)

// legacyElevatedRoles are role labels written by earlier versions of the data
// model that still appear in imported rows. They grant supervisory authority.
var legacyElevatedRoles = map[string]struct{}{
	"owner":      {},
	"supervisor": {},
}

// IsElevated reports whether the role grants supervisory authority within its
// company. Comparison is case-insensitive to tolerate legacy imported rows.
func (r CompanyRole) IsElevated() bool {
	switch CompanyRole(strings.ToLower(string(r))) {
	case CompanyRoleManager, CompanyRoleAdmin:
		return true
	}
	_, ok := legacyElevatedRoles[strings.ToLower(string(r))]
	return ok
}

// Membership represents the relationship of a User to a Company.
type Membership struct {
	UserID    string         `json:"userID"`    // FK -> users.user_id
	CompanyID string         `json:"companyID"` // FK -> companies.company_id
	Role      CompanyRole    `json:"role"`
	Status    MemberStatus   `json:"status"`
	Settings  map[string]any `json:"settings"` // Per-member overrides of company settings
	JoinedAt  time.Time      `json:"joinedAt"`
}

// EffectiveSettings merges company settings with the membership's overrides.
// Membership-level keys win on conflict.
func (m Membership) EffectiveSettings(company Company) map[string]any {
	effective := make(map[string]any, len(company.Settings)+len(m.Settings))
	for k, v := range company.Settings {
		effective[k] = v
	}
	for k, v := range m.Settings {
		effective[k] = v
	}
	return effective
}
