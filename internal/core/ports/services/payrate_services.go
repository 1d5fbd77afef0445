package services

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
)

// PayRateResolverSvc resolves the applicable rate record for a pair.
type PayRateResolverSvc interface {
	// ResolveRate returns the rate record for (user, company). When none
	// exists it returns a zero-valued record with IsGross=false; absence is
	// a valid result, never an error.
	ResolveRate(ctx context.Context, userID, companyID string) (domain.PayRate, error)
}

// PayRateSvcFacade combines rate resolution with rate management.
type PayRateSvcFacade interface {
	PayRateResolverSvc

	// GetRates returns the target user's rate record for a company, applying
	// the zero-value default. Access to another user's rates requires
	// supervision over them.
	GetRates(ctx context.Context, requestingUserID, targetUserID, companyID string) (domain.PayRate, error)

	// UpdateRates validates and upserts the rate record for the target user.
	// Requires supervision over the target (or self for platform admins).
	UpdateRates(ctx context.Context, requestingUserID, targetUserID string, req dto.UpdatePayRateRequest) (*domain.PayRate, error)

	// ListCompanyRates returns all rate records of a company. Requires an
	// elevated role there.
	ListCompanyRates(ctx context.Context, requestingUserID, companyID string) ([]domain.PayRate, error)
}
