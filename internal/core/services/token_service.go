package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/utils"
	"github.com/shiftwise-app/shiftwise_backend/pkg/config"
)

// tokenService implements the TokenSvcFacade interface
type tokenService struct {
	BaseService
	cfg     *config.AppConfig
	userSvc portssvc.UserSvcFacade
}

// NewTokenService creates a new token service with the provided dependencies
func NewTokenService(cfg *config.AppConfig, userSvc portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userSvc: userSvc}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiry)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken issues a new opaque token and stores only its hash.
// Issuing invalidates any previously stored refresh token for the user.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(s.cfg.RefreshTokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenExpiry)
	hash := utils.HashRefreshToken(raw)
	if err := s.userSvc.SetRefreshToken(ctx, user.UserID, hash, &expiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token hash", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return raw, expiry, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	user, err := s.userSvc.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.NewUnauthorizedError("no refresh token issued")
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.NewAppError(401, "refresh token expired", apperrors.ErrRefreshTokenExpired)
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	return user, nil
}
