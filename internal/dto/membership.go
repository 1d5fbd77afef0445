package dto

import (
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// AddMemberRequest defines data for directly adding a user to a company.
type AddMemberRequest struct {
	UserID string             `json:"userID" binding:"required"`
	Role   domain.CompanyRole `json:"role" binding:"required,oneof=worker manager admin"`
}

// UpdateMemberRequest defines the editable membership fields. Nil fields are
// left unchanged; a non-nil Settings replaces the member-level overrides.
type UpdateMemberRequest struct {
	Role     *domain.CompanyRole  `json:"role,omitempty" binding:"omitempty,oneof=worker manager admin"`
	Status   *domain.MemberStatus `json:"status,omitempty" binding:"omitempty,oneof=pending active rejected"`
	Settings *map[string]any      `json:"settings,omitempty"`
}

// MemberResponse defines data returned about a company membership.
type MemberResponse struct {
	UserID    string         `json:"userID"`
	CompanyID string         `json:"companyID"`
	Role      string         `json:"role"`
	Status    string         `json:"status"`
	Settings  map[string]any `json:"settings"`
	JoinedAt  time.Time      `json:"joinedAt"`
}

// ToMemberResponse converts domain.Membership to DTO.
func ToMemberResponse(m *domain.Membership) MemberResponse {
	return MemberResponse{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      string(m.Role),
		Status:    string(m.Status),
		Settings:  m.Settings,
		JoinedAt:  m.JoinedAt,
	}
}

// ToMemberResponses converts a slice of memberships to DTOs.
func ToMemberResponses(ms []domain.Membership) []MemberResponse {
	list := make([]MemberResponse, len(ms))
	for i := range ms {
		list[i] = ToMemberResponse(&ms[i])
	}
	return list
}
