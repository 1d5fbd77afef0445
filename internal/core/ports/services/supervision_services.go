package services

import "context"

// SupervisionSvc decides whether one user may act on another's records.
type SupervisionSvc interface {
	// CanSupervise reports whether the supervisor holds an elevated role in
	// at least one company where the target has an active membership. It is
	// a pure predicate: false is a valid answer, not an error.
	CanSupervise(ctx context.Context, supervisorID, targetUserID string) (bool, error)

	// RequireCanActOn is the authorization boundary: it allows self-access
	// and otherwise converts a negative CanSupervise answer into
	// apperrors.ErrForbidden.
	RequireCanActOn(ctx context.Context, actorID, targetUserID string) error
}
