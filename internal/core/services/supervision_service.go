package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
)

// supervisionService implements the SupervisionSvc interface
type supervisionService struct {
	BaseService
	authority portssvc.MembershipAuthoritySvc
	users     portssvc.UserReaderSvc
}

// NewSupervisionService creates a new supervision service with the provided dependencies
func NewSupervisionService(authority portssvc.MembershipAuthoritySvc, users portssvc.UserReaderSvc) portssvc.SupervisionSvc {
	return &supervisionService{
		authority: authority,
		users:     users,
	}
}

var _ portssvc.SupervisionSvc = (*supervisionService)(nil)

// CanSupervise reports whether the supervisor manages any company the target
// is an active member of. With no elevated memberships the answer is false
// immediately, without querying the target.
func (s *supervisionService) CanSupervise(ctx context.Context, supervisorID, targetUserID string) (bool, error) {
	elevated, err := s.authority.ElevatedCompanyIDs(ctx, supervisorID)
	if err != nil {
		return false, fmt.Errorf("failed to list elevated companies for %s: %w", supervisorID, err)
	}
	if len(elevated) == 0 {
		return false, nil
	}

	targetMemberships, err := s.authority.ListActiveMemberships(ctx, targetUserID)
	if err != nil {
		return false, fmt.Errorf("failed to list active memberships for %s: %w", targetUserID, err)
	}

	for _, m := range targetMemberships {
		if _, ok := elevated[m.CompanyID]; ok {
			return true, nil
		}
	}
	return false, nil
}

// RequireCanActOn converts the CanSupervise predicate into an authorization
// decision. Self-access and platform admins are always allowed.
func (s *supervisionService) RequireCanActOn(ctx context.Context, actorID, targetUserID string) error {
	if actorID == targetUserID {
		return nil
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to load acting user %s: %w", actorID, err)
	}
	if actor != nil && actor.Role == domain.UserRoleAdmin {
		return nil
	}

	ok, err := s.CanSupervise(ctx, actorID, targetUserID)
	if err != nil {
		return err
	}
	if !ok {
		s.LogDebug(ctx, "Supervision denied",
			slog.String("actor_id", actorID),
			slog.String("target_user_id", targetUserID))
		return apperrors.NewForbiddenError("not authorized to act on user " + targetUserID)
	}
	return nil
}
