package services

import (
	"context"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// TokenSvcFacade handles JWT access tokens and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token, stores its
	// hash on the user, and returns the raw token with its expiry time.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a raw refresh token against the user's
	// stored hash and expiry and returns the user when valid.
	ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)
}
