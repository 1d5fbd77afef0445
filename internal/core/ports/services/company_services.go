package services

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
)

// CompanyReaderSvc defines read operations for companies
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a company by ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListAvailableCompanies retrieves companies the user could request to
	// join (no membership, or a rejected one).
	ListAvailableCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// ListUserCompanies retrieves the companies the user is an active member
	// of, each paired with the user's membership for settings merging.
	ListUserCompanies(ctx context.Context, userID string) ([]dto.UserCompanyResponse, error)
}

// CompanyWriterSvc defines write operations for companies
type CompanyWriterSvc interface {
	// CreateCompany persists a new company; the creator becomes an active admin member.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// UpdateCompany applies changes to a company. Requires an elevated role there.
	UpdateCompany(ctx context.Context, requestingUserID, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)
}

// MembershipAuthoritySvc exposes the membership predicates the authorization
// layer is built on.
type MembershipAuthoritySvc interface {
	// ListActiveMemberships retrieves the user's memberships with status active.
	ListActiveMemberships(ctx context.Context, userID string) ([]domain.Membership, error)

	// ElevatedCompanyIDs retrieves the set of companies where the user holds
	// an elevated role on an active membership.
	ElevatedCompanyIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

// MembershipSvc defines membership lifecycle operations
type MembershipSvc interface {
	// JoinCompany creates a pending membership for the user and lazily
	// creates the zero-value net rate record for the pair.
	JoinCompany(ctx context.Context, userID, companyID string) (*domain.Membership, error)

	// AddMember directly adds a user to a company with status active.
	// Requires an elevated role in the company.
	AddMember(ctx context.Context, requestingUserID, companyID string, req dto.AddMemberRequest) (*domain.Membership, error)

	// ListMembers retrieves a company's memberships, optionally filtered by
	// status. Requires an elevated role in the company.
	ListMembers(ctx context.Context, requestingUserID, companyID string, status *domain.MemberStatus) ([]domain.Membership, error)

	// UpdateMember applies role/status/settings changes to a membership.
	// A transition into rejected notifies the affected user atomically with
	// the status write. Requires an elevated role in the company.
	UpdateMember(ctx context.Context, requestingUserID, companyID, targetUserID string, req dto.UpdateMemberRequest) (*domain.Membership, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	MembershipAuthoritySvc
	MembershipSvc
}
