package domain

import "time"

// UserRole is the system-level role of a user, independent of any company.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // Platform administrator
	UserRoleUser  UserRole = "user"  // Regular user
)

// User represents a registered user of the application.
type User struct {
	UserID           string   `json:"userID"` // Primary Key (UUID)
	Email            string   `json:"email"`
	HashedPassword   string   `json:"-"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	Role             UserRole `json:"role"`
	IsActive         bool     `json:"isActive"`         // Login access
	IsActiveWorker   bool     `json:"isActiveWorker"`   // Work-log access
	DefaultCompanyID *string  `json:"defaultCompanyID"` // Nullable FK -> companies.company_id
	AuditFields

	// Refresh token state for session renewal.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
