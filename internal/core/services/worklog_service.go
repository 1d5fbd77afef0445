package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shiftwise-app/shiftwise_backend/internal/utils/payroll"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// workLogService implements the WorkLogSvcFacade interface. It owns the
// pipeline from request to persisted computed earnings: resolve the rate
// record, run the calculation, store the four computed fields.
type workLogService struct {
	BaseService
	workLogRepo portsrepo.WorkLogRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	rates       portssvc.PayRateResolverSvc
	authority   portssvc.MembershipAuthoritySvc
	supervision portssvc.SupervisionSvc
}

// NewWorkLogService creates a new work log service with the provided dependencies
func NewWorkLogService(
	workLogRepo portsrepo.WorkLogRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	rates portssvc.PayRateResolverSvc,
	authority portssvc.MembershipAuthoritySvc,
	supervision portssvc.SupervisionSvc,
) portssvc.WorkLogSvcFacade {
	return &workLogService{
		workLogRepo: workLogRepo,
		companyRepo: companyRepo,
		rates:       rates,
		authority:   authority,
		supervision: supervision,
	}
}

var _ portssvc.WorkLogSvcFacade = (*workLogService)(nil)

// CreateWorkLog logs a new session. Computed fields are derived server-side
// from the current rate record; only the manual-override amount passes through.
func (s *workLogService) CreateWorkLog(ctx context.Context, requestingUserID string, req dto.CreateWorkLogRequest) (*domain.WorkLog, error) {
	targetUserID := requestingUserID
	if req.UserID != nil && *req.UserID != requestingUserID {
		if err := s.supervision.RequireCanActOn(ctx, requestingUserID, *req.UserID); err != nil {
			return nil, err
		}
		targetUserID = *req.UserID
	}

	now := time.Now()
	workLog := domain.WorkLog{
		WorkLogID:       uuid.NewString(),
		UserID:          targetUserID,
		CompanyID:       req.CompanyID,
		Type:            req.Type,
		HasCoordination: req.HasCoordination,
		HasNight:        req.HasNight,
		Description:     req.Description,
		Client:          req.Client,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var err error
	if workLog.Date, err = parseDatePtr(req.Date); err != nil {
		return nil, err
	}
	if workLog.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		return nil, err
	}
	if workLog.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		return nil, err
	}
	workLog.StartTime = req.StartTime
	workLog.EndTime = req.EndTime

	facts := payroll.SessionFacts{
		Type:            workLog.Type,
		DurationHours:   req.DurationHours,
		StartTime:       workLog.StartTime,
		EndTime:         workLog.EndTime,
		StartDate:       workLog.StartDate,
		EndDate:         workLog.EndDate,
		HasCoordination: workLog.HasCoordination,
		HasNight:        workLog.HasNight,
		ManualAmount:    req.Amount,
		IsGrossOverride: req.IsGross,
	}

	if err := s.computeInto(ctx, &workLog, facts); err != nil {
		return nil, err
	}

	if err := s.workLogRepo.SaveWorkLog(ctx, workLog); err != nil {
		s.LogError(ctx, err, "Failed to save work log", slog.String("user_id", targetUserID))
		return nil, fmt.Errorf("failed to save work log: %w", err)
	}

	s.LogInfo(ctx, "Work log created",
		slog.String("work_log_id", workLog.WorkLogID),
		slog.String("user_id", targetUserID),
		slog.String("type", string(workLog.Type)))
	return &workLog, nil
}

// UpdateWorkLog merges the non-nil request fields onto the persisted row and
// re-runs the entire computation against the merged record. Stale computed
// fields can never survive an update.
func (s *workLogService) UpdateWorkLog(ctx context.Context, requestingUserID, workLogID string, req dto.UpdateWorkLogRequest) (*domain.WorkLog, error) {
	existing, err := s.workLogRepo.FindWorkLogByID(ctx, workLogID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(ctx, requestingUserID, existing.UserID); err != nil {
		return nil, err
	}

	merged := *existing
	if req.CompanyID != nil {
		merged.CompanyID = req.CompanyID
	}
	if req.Type != nil {
		merged.Type = *req.Type
	}
	if req.Date != nil {
		if merged.Date, err = parseDatePtr(req.Date); err != nil {
			return nil, err
		}
	}
	if req.StartTime != nil {
		merged.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		merged.EndTime = req.EndTime
	}
	if req.StartDate != nil {
		if merged.StartDate, err = parseDatePtr(req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if merged.EndDate, err = parseDatePtr(req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.HasCoordination != nil {
		merged.HasCoordination = *req.HasCoordination
	}
	if req.HasNight != nil {
		merged.HasNight = *req.HasNight
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Client != nil {
		merged.Client = req.Client
	}

	facts := payroll.SessionFacts{
		Type:            merged.Type,
		DurationHours:   req.DurationHours,
		StartTime:       merged.StartTime,
		EndTime:         merged.EndTime,
		StartDate:       merged.StartDate,
		EndDate:         merged.EndDate,
		HasCoordination: merged.HasCoordination,
		HasNight:        merged.HasNight,
		ManualAmount:    manualAmountForUpdate(existing, &merged, req.Amount),
		IsGrossOverride: req.IsGross,
	}
	if req.DurationHours == nil && !existing.DurationHours.IsZero() && merged.StartTime == nil && merged.EndTime == nil &&
		merged.Type == domain.WorkLogParticular && existing.Type == domain.WorkLogParticular {
		// Hourly logs created from an explicit duration have no clock times;
		// keep that duration unless the update replaces it. A stored tutorial
		// duration is a day count and must never be reused as hours, so a type
		// change without new time data falls through to validation instead.
		d := existing.DurationHours
		facts.DurationHours = &d
	}

	if err := s.computeInto(ctx, &merged, facts); err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now()

	if err := s.workLogRepo.UpdateWorkLog(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to update work log", slog.String("work_log_id", workLogID))
		return nil, fmt.Errorf("failed to update work log %s: %w", workLogID, err)
	}
	return &merged, nil
}

func (s *workLogService) GetWorkLogByID(ctx context.Context, requestingUserID, workLogID string) (*domain.WorkLog, error) {
	workLog, err := s.workLogRepo.FindWorkLogByID(ctx, workLogID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccess(ctx, requestingUserID, workLog.UserID); err != nil {
		return nil, err
	}
	return workLog, nil
}

// ListWorkLogs retrieves a filtered page. Without a user filter the caller
// sees their own logs, unless they filter by a company they manage, which
// yields the company-wide listing.
func (s *workLogService) ListWorkLogs(ctx context.Context, requestingUserID string, req dto.ListWorkLogsRequest) ([]domain.WorkLog, string, error) {
	params := portsrepo.ListWorkLogsParams{
		CompanyID: req.CompanyID,
		Limit:     req.Limit,
		PageToken: req.PageToken,
	}

	switch {
	case req.UserID != nil && *req.UserID != requestingUserID:
		if err := s.supervision.RequireCanActOn(ctx, requestingUserID, *req.UserID); err != nil {
			return nil, "", err
		}
		params.UserID = req.UserID
	case req.UserID == nil && req.CompanyID != nil:
		elevated, err := s.authority.ElevatedCompanyIDs(ctx, requestingUserID)
		if err != nil {
			return nil, "", err
		}
		if _, ok := elevated[*req.CompanyID]; !ok {
			// Not a manager there: scope down to the caller's own logs.
			params.UserID = &requestingUserID
		}
	default:
		params.UserID = &requestingUserID
	}

	var err error
	if params.FromDate, err = parseDatePtr(req.FromDate); err != nil {
		return nil, "", err
	}
	if params.ToDate, err = parseDatePtr(req.ToDate); err != nil {
		return nil, "", err
	}

	logs, nextToken, err := s.workLogRepo.ListWorkLogs(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list work logs")
		return nil, "", fmt.Errorf("failed to list work logs: %w", err)
	}
	if logs == nil {
		logs = []domain.WorkLog{}
	}
	return logs, nextToken, nil
}

func (s *workLogService) DeleteWorkLog(ctx context.Context, requestingUserID, workLogID string) error {
	workLog, err := s.workLogRepo.FindWorkLogByID(ctx, workLogID)
	if err != nil {
		return err
	}
	if err := s.authorizeAccess(ctx, requestingUserID, workLog.UserID); err != nil {
		return err
	}
	if err := s.workLogRepo.DeleteWorkLog(ctx, workLogID); err != nil {
		s.LogError(ctx, err, "Failed to delete work log", slog.String("work_log_id", workLogID))
		return fmt.Errorf("failed to delete work log %s: %w", workLogID, err)
	}
	s.LogInfo(ctx, "Work log deleted", slog.String("work_log_id", workLogID))
	return nil
}

// RecalculateCompanyWorkLogs re-runs the computation for every stored log of
// a company against the current rate records. Logs that fail to recompute are
// skipped and logged; the pass continues.
func (s *workLogService) RecalculateCompanyWorkLogs(ctx context.Context, requestingUserID, companyID string) (int, error) {
	elevated, err := s.authority.ElevatedCompanyIDs(ctx, requestingUserID)
	if err != nil {
		return 0, err
	}
	if _, ok := elevated[companyID]; !ok {
		return 0, apperrors.NewForbiddenError("requires an elevated role in company " + companyID)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return 0, err
	}

	logs, err := s.workLogRepo.ListWorkLogsByCompanyID(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list company work logs: %w", err)
	}

	changed := 0
	for i := range logs {
		workLog := logs[i]
		rate, err := s.rates.ResolveRate(ctx, workLog.UserID, companyID)
		if err != nil {
			s.LogError(ctx, err, "Skipping log during recalculation",
				slog.String("work_log_id", workLog.WorkLogID))
			continue
		}

		facts := payroll.SessionFacts{
			Type:            workLog.Type,
			StartTime:       workLog.StartTime,
			EndTime:         workLog.EndTime,
			StartDate:       workLog.StartDate,
			EndDate:         workLog.EndDate,
			HasCoordination: workLog.HasCoordination,
			HasNight:        workLog.HasNight,
		}
		if workLog.StartTime == nil && workLog.EndTime == nil && !workLog.DurationHours.IsZero() {
			d := workLog.DurationHours
			facts.DurationHours = &d
		}

		result, err := payroll.Compute(rate, facts, company.SocialSecurityDeduction)
		if err != nil {
			s.LogError(ctx, err, "Skipping log during recalculation",
				slog.String("work_log_id", workLog.WorkLogID))
			continue
		}

		if result.Net.Equal(workLog.Amount) && result.Gross.Equal(workLog.GrossAmount) &&
			result.RateApplied.Equal(workLog.RateApplied) && result.IsGross == workLog.IsGrossCalculation {
			continue
		}

		workLog.Amount = result.Net
		workLog.GrossAmount = result.Gross
		workLog.RateApplied = result.RateApplied
		workLog.DurationHours = result.DurationHours
		workLog.IsGrossCalculation = result.IsGross
		workLog.UpdatedAt = time.Now()
		if err := s.workLogRepo.UpdateWorkLog(ctx, workLog); err != nil {
			s.LogError(ctx, err, "Failed to persist recalculated log",
				slog.String("work_log_id", workLog.WorkLogID))
			continue
		}
		changed++
	}

	s.LogInfo(ctx, "Company recalculation finished",
		slog.String("company_id", companyID),
		slog.Int("total", len(logs)),
		slog.Int("changed", changed))
	return changed, nil
}

// computeInto resolves the rate and company default for the work log and
// writes the computed fields onto it.
func (s *workLogService) computeInto(ctx context.Context, workLog *domain.WorkLog, facts payroll.SessionFacts) error {
	rate := domain.PayRate{}
	companyDefaultSS := decimal.Zero

	if workLog.CompanyID != nil {
		company, err := s.companyRepo.FindCompanyByID(ctx, *workLog.CompanyID)
		if err != nil {
			return err
		}
		companyDefaultSS = company.SocialSecurityDeduction

		rate, err = s.rates.ResolveRate(ctx, workLog.UserID, *workLog.CompanyID)
		if err != nil {
			return err
		}
	}

	result, err := payroll.Compute(rate, facts, companyDefaultSS)
	if err != nil {
		return err
	}

	workLog.Amount = result.Net
	workLog.GrossAmount = result.Gross
	workLog.RateApplied = result.RateApplied
	workLog.DurationHours = result.DurationHours
	workLog.IsGrossCalculation = result.IsGross
	return nil
}

// manualAmountForUpdate decides whether the recomputation runs in manual
// mode. An explicit amount in the request always wins. Ad-hoc entries without
// a company keep their stored manual amount, so an unrelated field edit does
// not wipe it.
func manualAmountForUpdate(existing, merged *domain.WorkLog, requested *decimal.Decimal) *decimal.Decimal {
	if requested != nil {
		return requested
	}
	if merged.CompanyID == nil && existing.RateApplied.IsZero() && !existing.Amount.IsZero() {
		a := existing.Amount
		return &a
	}
	return nil
}

func (s *workLogService) authorizeAccess(ctx context.Context, requestingUserID, ownerID string) error {
	if requestingUserID == ownerID {
		return nil
	}
	return s.supervision.RequireCanActOn(ctx, requestingUserID, ownerID)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *s))
	}
	return &t, nil
}
