package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// payRateService implements the PayRateSvcFacade interface
type payRateService struct {
	BaseService
	payRateRepo portsrepo.PayRateRepositoryFacade
	authority   portssvc.MembershipAuthoritySvc
	supervision portssvc.SupervisionSvc
}

// NewPayRateService creates a new pay rate service with the provided dependencies
func NewPayRateService(
	payRateRepo portsrepo.PayRateRepositoryFacade,
	authority portssvc.MembershipAuthoritySvc,
	supervision portssvc.SupervisionSvc,
) portssvc.PayRateSvcFacade {
	return &payRateService{
		payRateRepo: payRateRepo,
		authority:   authority,
		supervision: supervision,
	}
}

var _ portssvc.PayRateSvcFacade = (*payRateService)(nil)

// defaultPayRate is the documented fallback when no rate record exists for a
// pair: zero rates, net calculation. New work defaults to net; downstream
// behavior depends on this exact asymmetry.
func defaultPayRate(userID, companyID string) domain.PayRate {
	return domain.PayRate{
		UserID:           userID,
		CompanyID:        companyID,
		HourlyRate:       decimal.Zero,
		DailyRate:        decimal.Zero,
		CoordinationRate: decimal.Zero,
		NightRate:        decimal.Zero,
		IsGross:          false,
		DeductionIRPF:    decimal.Zero,
		DeductionExtra:   decimal.Zero,
	}
}

// ResolveRate returns the rate record for (user, company), or the zero-value
// net default when none exists. Absence is a valid result, not a failure.
func (s *payRateService) ResolveRate(ctx context.Context, userID, companyID string) (domain.PayRate, error) {
	rate, err := s.payRateRepo.FindPayRate(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return defaultPayRate(userID, companyID), nil
		}
		s.LogError(ctx, err, "Failed to resolve pay rate",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return domain.PayRate{}, fmt.Errorf("failed to resolve pay rate: %w", err)
	}
	return *rate, nil
}

// GetRates returns the target user's rates for a company, supervisor-gated
// when the target is another user.
func (s *payRateService) GetRates(ctx context.Context, requestingUserID, targetUserID, companyID string) (domain.PayRate, error) {
	if requestingUserID != targetUserID {
		if err := s.supervision.RequireCanActOn(ctx, requestingUserID, targetUserID); err != nil {
			return domain.PayRate{}, err
		}
	}
	return s.ResolveRate(ctx, targetUserID, companyID)
}

// UpdateRates validates and upserts the rate record for the target user.
func (s *payRateService) UpdateRates(ctx context.Context, requestingUserID, targetUserID string, req dto.UpdatePayRateRequest) (*domain.PayRate, error) {
	if err := s.requireElevatedIn(ctx, requestingUserID, req.CompanyID); err != nil {
		return nil, err
	}

	if err := validateRateRequest(req); err != nil {
		return nil, err
	}

	rate := domain.PayRate{
		UserID:           targetUserID,
		CompanyID:        req.CompanyID,
		HourlyRate:       req.HourlyRate,
		DailyRate:        req.DailyRate,
		CoordinationRate: req.CoordinationRate,
		NightRate:        req.NightRate,
		IsGross:          req.IsGross,
		DeductionSS:      req.DeductionSS,
		DeductionIRPF:    req.DeductionIRPF,
		DeductionExtra:   req.DeductionExtra,
		UpdatedAt:        time.Now(),
	}

	if err := s.payRateRepo.UpsertPayRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to upsert pay rate",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", req.CompanyID))
		return nil, fmt.Errorf("failed to update rates for user %s: %w", targetUserID, err)
	}

	s.LogInfo(ctx, "Pay rate updated",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", req.CompanyID),
		slog.Bool("is_gross", rate.IsGross))
	return &rate, nil
}

// ListCompanyRates returns all rate records of a company.
func (s *payRateService) ListCompanyRates(ctx context.Context, requestingUserID, companyID string) ([]domain.PayRate, error) {
	if err := s.requireElevatedIn(ctx, requestingUserID, companyID); err != nil {
		return nil, err
	}

	rates, err := s.payRateRepo.ListPayRatesByCompanyID(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list company rates", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list rates for company %s: %w", companyID, err)
	}
	if rates == nil {
		return []domain.PayRate{}, nil
	}
	return rates, nil
}

func (s *payRateService) requireElevatedIn(ctx context.Context, userID, companyID string) error {
	elevated, err := s.authority.ElevatedCompanyIDs(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check elevated roles: %w", err)
	}
	if _, ok := elevated[companyID]; !ok {
		return apperrors.NewForbiddenError("requires an elevated role in company " + companyID)
	}
	return nil
}

// validateRateRequest rejects rate configurations whose summed deduction
// fractions would reach 100%, which would zero out or invert net pay.
// Existing stored rows are not revalidated; the calculator stays permissive.
func validateRateRequest(req dto.UpdatePayRateRequest) error {
	one := decimal.NewFromInt(1)
	for _, v := range []decimal.Decimal{req.HourlyRate, req.DailyRate, req.CoordinationRate, req.NightRate} {
		if v.IsNegative() {
			return apperrors.NewValidationFailedError("rates must not be negative")
		}
	}

	total := req.DeductionIRPF.Add(req.DeductionExtra)
	if req.DeductionSS != nil {
		if req.DeductionSS.IsNegative() || req.DeductionSS.GreaterThanOrEqual(one) {
			return apperrors.NewValidationFailedError("deduction fractions must be in [0,1)")
		}
		total = total.Add(*req.DeductionSS)
	}
	if req.DeductionIRPF.IsNegative() || req.DeductionExtra.IsNegative() {
		return apperrors.NewValidationFailedError("deduction fractions must be in [0,1)")
	}
	if total.GreaterThanOrEqual(one) {
		return apperrors.NewValidationFailedError("summed deduction fractions must stay below 1")
	}
	return nil
}
