package repositories

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// MembershipReader defines read operations for membership data
type MembershipReader interface {
	// FindMembership retrieves the membership of a user in a company.
	FindMembership(ctx context.Context, userID, companyID string) (*domain.Membership, error)

	// ListActiveMembershipsByUserID retrieves the user's memberships with
	// status active, across all companies.
	ListActiveMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error)

	// ListMembersByCompanyID retrieves memberships of a company, optionally
	// filtered by status.
	ListMembersByCompanyID(ctx context.Context, companyID string, status *domain.MemberStatus) ([]domain.Membership, error)
}

// MembershipWriter defines write operations for membership data
type MembershipWriter interface {
	// SaveMembership persists a new membership.
	SaveMembership(ctx context.Context, membership domain.Membership) error

	// UpdateMembership persists role and settings changes to a membership.
	UpdateMembership(ctx context.Context, membership domain.Membership) error

	// UpdateMemberStatus transitions a membership's status. When notification
	// is non-nil it is persisted in the same database transaction: either
	// both the status change and the notification land, or neither does.
	UpdateMemberStatus(ctx context.Context, userID, companyID string, status domain.MemberStatus, notification *domain.Notification) error
}

// MembershipRepositoryFacade combines all membership-related repository interfaces
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
	TransactionManager
}
