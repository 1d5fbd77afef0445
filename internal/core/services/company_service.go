package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo    portsrepo.CompanyRepositoryFacade
	membershipRepo portsrepo.MembershipRepositoryFacade
	payRateRepo    portsrepo.PayRateRepositoryFacade
	sink           portssvc.NotificationSink
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(
	companyRepo portsrepo.CompanyRepositoryFacade,
	membershipRepo portsrepo.MembershipRepositoryFacade,
	payRateRepo portsrepo.PayRateRepositoryFacade,
	sink portssvc.NotificationSink,
) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		payRateRepo:    payRateRepo,
		sink:           sink,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) ListAvailableCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesAvailableToUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available companies: %w", err)
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// ListUserCompanies pairs each active membership with its company and the
// merged effective settings.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]dto.UserCompanyResponse, error) {
	memberships, err := s.membershipRepo.ListActiveMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for user %s: %w", userID, err)
	}

	result := make([]dto.UserCompanyResponse, 0, len(memberships))
	for i := range memberships {
		company, err := s.companyRepo.FindCompanyByID(ctx, memberships[i].CompanyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Membership points at missing company",
					slog.String("company_id", memberships[i].CompanyID))
				continue
			}
			return nil, fmt.Errorf("failed to load company %s: %w", memberships[i].CompanyID, err)
		}
		result = append(result, dto.ToUserCompanyResponse(company, &memberships[i]))
	}
	return result, nil
}

// CreateCompany persists a new company and makes the creator an active admin
// member with the zero-value net rate record.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	now := time.Now()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		FiscalID:  req.FiscalID,
		Settings:  req.Settings,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.SocialSecurityDeduction != nil {
		company.SocialSecurityDeduction = *req.SocialSecurityDeduction
	}
	if company.Settings == nil {
		company.Settings = map[string]any{}
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	membership := domain.Membership{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.CompanyRoleAdmin,
		Status:    domain.MemberStatusActive,
		Settings:  map[string]any{},
		JoinedAt:  now,
	}
	if err := s.membershipRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator membership", slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to add creator to company: %w", err)
	}
	if err := s.ensureRateRecord(ctx, creatorUserID, company.CompanyID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// UpdateCompany applies non-nil fields. Requires an elevated role there.
func (s *companyService) UpdateCompany(ctx context.Context, requestingUserID, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	if err := s.requireElevated(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.FiscalID != nil {
		company.FiscalID = *req.FiscalID
	}
	if req.SocialSecurityDeduction != nil {
		company.SocialSecurityDeduction = *req.SocialSecurityDeduction
	}
	if req.Settings != nil {
		company.Settings = *req.Settings
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company %s: %w", companyID, err)
	}
	return company, nil
}

func (s *companyService) ListActiveMemberships(ctx context.Context, userID string) ([]domain.Membership, error) {
	return s.membershipRepo.ListActiveMembershipsByUserID(ctx, userID)
}

// ElevatedCompanyIDs returns the companies where the user holds an elevated
// role on an active membership.
func (s *companyService) ElevatedCompanyIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	memberships, err := s.membershipRepo.ListActiveMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for user %s: %w", userID, err)
	}
	elevated := make(map[string]struct{})
	for _, m := range memberships {
		if m.Role.IsElevated() {
			elevated[m.CompanyID] = struct{}{}
		}
	}
	return elevated, nil
}

// JoinCompany creates a pending membership request. Re-joining is idempotent:
// an existing membership of any status is returned unchanged.
func (s *companyService) JoinCompany(ctx context.Context, userID, companyID string) (*domain.Membership, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}

	existing, err := s.membershipRepo.FindMembership(ctx, userID, companyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	membership := domain.Membership{
		UserID:    userID,
		CompanyID: companyID,
		Role:      domain.CompanyRoleWorker,
		Status:    domain.MemberStatusPending,
		Settings:  map[string]any{},
		JoinedAt:  time.Now(),
	}
	if err := s.membershipRepo.SaveMembership(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to save join request",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to request membership: %w", err)
	}
	if err := s.ensureRateRecord(ctx, userID, companyID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Membership requested",
		slog.String("user_id", userID), slog.String("company_id", companyID))
	return &membership, nil
}

// AddMember directly adds a user with status active, bypassing the request
// flow. Requires an elevated role in the company.
func (s *companyService) AddMember(ctx context.Context, requestingUserID, companyID string, req dto.AddMemberRequest) (*domain.Membership, error) {
	if err := s.requireElevated(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}

	existing, err := s.membershipRepo.FindMembership(ctx, req.UserID, companyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if existing != nil && existing.Status == domain.MemberStatusActive {
		return nil, apperrors.NewConflictError("user is already an active member")
	}

	membership := domain.Membership{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      req.Role,
		Status:    domain.MemberStatusActive,
		Settings:  map[string]any{},
		JoinedAt:  time.Now(),
	}
	if existing != nil {
		membership.Settings = existing.Settings
		membership.JoinedAt = existing.JoinedAt
		if err := s.membershipRepo.UpdateMembership(ctx, membership); err != nil {
			return nil, fmt.Errorf("failed to activate membership: %w", err)
		}
		if err := s.membershipRepo.UpdateMemberStatus(ctx, req.UserID, companyID, domain.MemberStatusActive, nil); err != nil {
			return nil, fmt.Errorf("failed to activate membership: %w", err)
		}
	} else {
		if err := s.membershipRepo.SaveMembership(ctx, membership); err != nil {
			s.LogError(ctx, err, "Failed to add member",
				slog.String("user_id", req.UserID), slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
	}
	if err := s.ensureRateRecord(ctx, req.UserID, companyID); err != nil {
		return nil, err
	}
	return &membership, nil
}

func (s *companyService) ListMembers(ctx context.Context, requestingUserID, companyID string, status *domain.MemberStatus) ([]domain.Membership, error) {
	if err := s.requireElevated(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}
	members, err := s.membershipRepo.ListMembersByCompanyID(ctx, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of company %s: %w", companyID, err)
	}
	if members == nil {
		return []domain.Membership{}, nil
	}
	return members, nil
}

// UpdateMember applies role/settings changes, then the status transition.
// Transitioning into rejected persists a warning notification for the
// affected user in the same transaction as the status write.
func (s *companyService) UpdateMember(ctx context.Context, requestingUserID, companyID, targetUserID string, req dto.UpdateMemberRequest) (*domain.Membership, error) {
	if err := s.requireElevated(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.FindMembership(ctx, targetUserID, companyID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil || req.Settings != nil {
		if req.Role != nil {
			membership.Role = *req.Role
		}
		if req.Settings != nil {
			membership.Settings = *req.Settings
		}
		if err := s.membershipRepo.UpdateMembership(ctx, *membership); err != nil {
			s.LogError(ctx, err, "Failed to update membership",
				slog.String("user_id", targetUserID), slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to update membership: %w", err)
		}
	}

	if req.Status != nil && *req.Status != membership.Status {
		var notification *domain.Notification
		if *req.Status == domain.MemberStatusRejected {
			notification = s.buildRejectionNotification(ctx, targetUserID, companyID)
		}
		if err := s.membershipRepo.UpdateMemberStatus(ctx, targetUserID, companyID, *req.Status, notification); err != nil {
			s.LogError(ctx, err, "Failed to transition member status",
				slog.String("user_id", targetUserID),
				slog.String("company_id", companyID),
				slog.String("status", string(*req.Status)))
			return nil, fmt.Errorf("failed to update member status: %w", err)
		}
		membership.Status = *req.Status

		if notification != nil && s.sink != nil {
			// External delivery is best-effort; the stored notification is
			// already committed.
			if err := s.sink.Notify(ctx, targetUserID, notification.Message, notification.Type); err != nil {
				s.LogError(ctx, err, "External notification delivery failed",
					slog.String("user_id", targetUserID))
			}
		}
	}

	return membership, nil
}

// buildRejectionNotification composes the removal notice. The message follows
// the wording the mobile client already displays.
func (s *companyService) buildRejectionNotification(ctx context.Context, targetUserID, companyID string) *domain.Notification {
	message := "Has sido dado de baja de una empresa."
	if company, err := s.companyRepo.FindCompanyByID(ctx, companyID); err == nil {
		message = fmt.Sprintf("Has sido dado de baja de la empresa %s", company.Name)
	}
	return &domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         targetUserID,
		Message:        message,
		Type:           domain.NotificationWarning,
		IsRead:         false,
		CreatedAt:      time.Now(),
	}
}

// ensureRateRecord lazily creates the zero-value net rate record so earnings
// computations for the pair always find a row.
func (s *companyService) ensureRateRecord(ctx context.Context, userID, companyID string) error {
	_, err := s.payRateRepo.FindPayRate(ctx, userID, companyID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check rate record: %w", err)
	}

	rate := domain.PayRate{
		UserID:           userID,
		CompanyID:        companyID,
		HourlyRate:       decimal.Zero,
		DailyRate:        decimal.Zero,
		CoordinationRate: decimal.Zero,
		NightRate:        decimal.Zero,
		IsGross:          false,
		DeductionIRPF:    decimal.Zero,
		DeductionExtra:   decimal.Zero,
		UpdatedAt:        time.Now(),
	}
	if err := s.payRateRepo.UpsertPayRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to create default rate record",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to create default rate record: %w", err)
	}
	return nil
}

func (s *companyService) requireElevated(ctx context.Context, userID, companyID string) error {
	elevated, err := s.ElevatedCompanyIDs(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := elevated[companyID]; !ok {
		return apperrors.NewForbiddenError("requires an elevated role in company " + companyID)
	}
	return nil
}
