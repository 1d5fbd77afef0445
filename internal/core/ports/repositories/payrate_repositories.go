package repositories

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// PayRateReader defines read operations for pay rate data
type PayRateReader interface {
	// FindPayRate retrieves the rate record for a (user, company) pair.
	// Returns apperrors.ErrNotFound when no record exists; callers that need
	// the documented zero-value default apply it themselves.
	FindPayRate(ctx context.Context, userID, companyID string) (*domain.PayRate, error)

	// ListPayRatesByCompanyID retrieves all rate records of a company.
	ListPayRatesByCompanyID(ctx context.Context, companyID string) ([]domain.PayRate, error)
}

// PayRateWriter defines write operations for pay rate data
type PayRateWriter interface {
	// UpsertPayRate creates or replaces the rate record for its (user,
	// company) pair.
	UpsertPayRate(ctx context.Context, rate domain.PayRate) error
}

// PayRateRepositoryFacade combines all pay-rate repository interfaces
type PayRateRepositoryFacade interface {
	PayRateReader
	PayRateWriter
}
