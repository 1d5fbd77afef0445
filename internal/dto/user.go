package dto

import (
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// CreateUserRequest defines data for registering a new user.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// UpdateUserRequest defines the editable profile fields. Nil fields are left
// unchanged.
type UpdateUserRequest struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	DefaultCompanyID *string `json:"defaultCompanyID,omitempty"`
}

// UserResponse defines data returned for a user.
type UserResponse struct {
	UserID           string    `json:"userID"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Role             string    `json:"role"`
	IsActive         bool      `json:"isActive"`
	DefaultCompanyID *string   `json:"defaultCompanyID,omitempty"`
	IsSupervisor     bool      `json:"isSupervisor"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO. isSupervisor is derived by the
// caller from the user's elevated memberships.
func ToUserResponse(u *domain.User, isSupervisor bool) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             string(u.Role),
		IsActive:         u.IsActive,
		DefaultCompanyID: u.DefaultCompanyID,
		IsSupervisor:     isSupervisor,
		CreatedAt:        u.CreatedAt,
	}
}
