package services

import (
	"context"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a page of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser applies profile changes to a user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// SetRefreshToken stores the hashed refresh token for a user. A nil
	// expiry clears it.
	SetRefreshToken(ctx context.Context, userID, tokenHash string, expiry *time.Time) error
}

// UserAuthSvc defines credential checks
type UserAuthSvc interface {
	// AuthenticateUser verifies email and password and returns the user.
	// Returns apperrors.ErrUnauthorized on bad credentials.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
