package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WorkLogRepository ---
type MockWorkLogRepository struct {
	mock.Mock
}

func (m *MockWorkLogRepository) FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, workLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogRepository) ListWorkLogs(ctx context.Context, params portsrepo.ListWorkLogsParams) ([]domain.WorkLog, string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.WorkLog), args.String(1), args.Error(2)
}

func (m *MockWorkLogRepository) ListWorkLogsByCompanyID(ctx context.Context, companyID string) ([]domain.WorkLog, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkLog), args.Error(1)
}

func (m *MockWorkLogRepository) SaveWorkLog(ctx context.Context, workLog domain.WorkLog) error {
	args := m.Called(ctx, workLog)
	return args.Error(0)
}

func (m *MockWorkLogRepository) UpdateWorkLog(ctx context.Context, workLog domain.WorkLog) error {
	args := m.Called(ctx, workLog)
	return args.Error(0)
}

func (m *MockWorkLogRepository) DeleteWorkLog(ctx context.Context, workLogID string) error {
	args := m.Called(ctx, workLogID)
	return args.Error(0)
}

// --- Mock PayRateResolverSvc ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) ResolveRate(ctx context.Context, userID, companyID string) (domain.PayRate, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).(domain.PayRate), args.Error(1)
}

// --- Test Suite ---
type WorkLogServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockWorkLogRepository
	mockCompanyRepo *MockCompanyRepository
	mockResolver    *MockRateResolver
	mockAuthority   *MockMembershipAuthority
	mockSupervision *MockSupervision
	service         portssvc.WorkLogSvcFacade
}

func (suite *WorkLogServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWorkLogRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockResolver = new(MockRateResolver)
	suite.mockAuthority = new(MockMembershipAuthority)
	suite.mockSupervision = new(MockSupervision)
	suite.service = services.NewWorkLogService(
		suite.mockRepo, suite.mockCompanyRepo, suite.mockResolver, suite.mockAuthority, suite.mockSupervision)
}

func strPtr(s string) *string { return &s }

func (suite *WorkLogServiceTestSuite) TestCreateWorkLog_HourlyGrossComputesNet() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{
			CompanyID:               companyID,
			SocialSecurityDeduction: decimal.RequireFromString("0.0648"),
		}, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, userID, companyID).
		Return(domain.PayRate{
			UserID:     userID,
			CompanyID:  companyID,
			HourlyRate: decimal.RequireFromString("20"),
			IsGross:    true,
		}, nil).Once()
	suite.mockRepo.On("SaveWorkLog", ctx, mock.MatchedBy(func(w domain.WorkLog) bool {
		return w.UserID == userID &&
			w.GrossAmount.Equal(decimal.RequireFromString("160.00")) &&
			w.Amount.Equal(decimal.RequireFromString("149.63")) &&
			w.IsGrossCalculation
	})).Return(nil).Once()

	workLog, err := suite.service.CreateWorkLog(ctx, userID, dto.CreateWorkLogRequest{
		CompanyID: &companyID,
		Type:      domain.WorkLogParticular,
		Date:      strPtr("2025-06-03"),
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("17:00"),
	})

	suite.Require().NoError(err)
	suite.True(workLog.DurationHours.Equal(decimal.RequireFromString("8")))
	suite.True(workLog.RateApplied.Equal(decimal.RequireFromString("20")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkLogServiceTestSuite) TestCreateWorkLog_ManualAmountWithoutCompany() {
	ctx := context.Background()
	userID := uuid.NewString()
	amount := decimal.RequireFromString("75.50")

	suite.mockRepo.On("SaveWorkLog", ctx, mock.MatchedBy(func(w domain.WorkLog) bool {
		return w.Amount.Equal(amount) && w.GrossAmount.Equal(amount) &&
			w.RateApplied.IsZero() && w.IsGrossCalculation && w.CompanyID == nil
	})).Return(nil).Once()

	workLog, err := suite.service.CreateWorkLog(ctx, userID, dto.CreateWorkLogRequest{
		Type:   domain.WorkLogParticular,
		Amount: &amount,
	})

	suite.Require().NoError(err)
	suite.True(workLog.Amount.Equal(amount))
	// No company, so no rate resolution and no company lookup happen.
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "FindCompanyByID", mock.Anything, mock.Anything)
}

func (suite *WorkLogServiceTestSuite) TestCreateWorkLog_ForOtherUserRequiresSupervision() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockSupervision.On("RequireCanActOn", ctx, requesterID, targetID).
		Return(apperrors.NewForbiddenError("nope")).Once()

	_, err := suite.service.CreateWorkLog(ctx, requesterID, dto.CreateWorkLogRequest{
		UserID: &targetID,
		Type:   domain.WorkLogParticular,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveWorkLog", mock.Anything, mock.Anything)
}

func (suite *WorkLogServiceTestSuite) TestCreateWorkLog_TutorialInclusiveDays() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, userID, companyID).
		Return(domain.PayRate{
			DailyRate: decimal.RequireFromString("90"),
			IsGross:   false,
		}, nil).Once()
	suite.mockRepo.On("SaveWorkLog", ctx, mock.MatchedBy(func(w domain.WorkLog) bool {
		return w.DurationHours.Equal(decimal.RequireFromString("3")) &&
			w.Amount.Equal(decimal.RequireFromString("270.00"))
	})).Return(nil).Once()

	workLog, err := suite.service.CreateWorkLog(ctx, userID, dto.CreateWorkLogRequest{
		CompanyID: &companyID,
		Type:      domain.WorkLogTutorial,
		StartDate: strPtr("2025-06-02"),
		EndDate:   strPtr("2025-06-04"),
	})

	suite.Require().NoError(err)
	suite.False(workLog.IsGrossCalculation)
}

func (suite *WorkLogServiceTestSuite) TestCreateWorkLog_MissingCompanyIsNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(nil, apperrors.NewNotFoundError("no company")).Once()

	_, err := suite.service.CreateWorkLog(ctx, userID, dto.CreateWorkLogRequest{
		CompanyID: &companyID,
		Type:      domain.WorkLogParticular,
		StartTime: strPtr("09:00"),
		EndTime:   strPtr("17:00"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkLogServiceTestSuite) TestUpdateWorkLog_MergeRecomputesEverything() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()
	workLogID := uuid.NewString()

	existing := &domain.WorkLog{
		WorkLogID:          workLogID,
		UserID:             userID,
		CompanyID:          &companyID,
		Type:               domain.WorkLogParticular,
		StartTime:          strPtr("09:00"),
		EndTime:            strPtr("13:00"),
		DurationHours:      decimal.RequireFromString("4"),
		Amount:             decimal.RequireFromString("80.00"),
		GrossAmount:        decimal.RequireFromString("80.00"),
		RateApplied:        decimal.RequireFromString("20"),
		IsGrossCalculation: false,
	}

	suite.mockRepo.On("FindWorkLogByID", ctx, workLogID).Return(existing, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, userID, companyID).
		Return(domain.PayRate{HourlyRate: decimal.RequireFromString("20")}, nil).Once()
	suite.mockRepo.On("UpdateWorkLog", ctx, mock.MatchedBy(func(w domain.WorkLog) bool {
		return w.DurationHours.Equal(decimal.RequireFromString("8")) &&
			w.Amount.Equal(decimal.RequireFromString("160.00")) &&
			*w.EndTime == "17:00"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateWorkLog(ctx, userID, workLogID, dto.UpdateWorkLogRequest{
		EndTime: strPtr("17:00"),
	})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(decimal.RequireFromString("160.00")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkLogServiceTestSuite) TestUpdateWorkLog_AdHocManualAmountSurvivesUnrelatedEdit() {
	ctx := context.Background()
	userID := uuid.NewString()
	workLogID := uuid.NewString()

	existing := &domain.WorkLog{
		WorkLogID:          workLogID,
		UserID:             userID,
		Type:               domain.WorkLogParticular,
		Amount:             decimal.RequireFromString("75.50"),
		GrossAmount:        decimal.RequireFromString("75.50"),
		RateApplied:        decimal.Zero,
		IsGrossCalculation: true,
		Description:        "old",
	}

	suite.mockRepo.On("FindWorkLogByID", ctx, workLogID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateWorkLog", ctx, mock.MatchedBy(func(w domain.WorkLog) bool {
		return w.Amount.Equal(decimal.RequireFromString("75.50")) && w.Description == "new"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateWorkLog(ctx, userID, workLogID, dto.UpdateWorkLogRequest{
		Description: strPtr("new"),
	})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(existing.Amount))
}

func (suite *WorkLogServiceTestSuite) TestUpdateWorkLog_TypeFlipWithoutTimesRejectsStoredDayCount() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()
	workLogID := uuid.NewString()

	start := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC)
	existing := &domain.WorkLog{
		WorkLogID:     workLogID,
		UserID:        userID,
		CompanyID:     &companyID,
		Type:          domain.WorkLogTutorial,
		StartDate:     &start,
		EndDate:       &end,
		DurationHours: decimal.RequireFromString("3"), // day count, not hours
		Amount:        decimal.RequireFromString("270.00"),
		GrossAmount:   decimal.RequireFromString("270.00"),
		RateApplied:   decimal.RequireFromString("90"),
	}

	suite.mockRepo.On("FindWorkLogByID", ctx, workLogID).Return(existing, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, userID, companyID).
		Return(domain.PayRate{HourlyRate: decimal.RequireFromString("20")}, nil).Once()

	newType := domain.WorkLogParticular
	_, err := suite.service.UpdateWorkLog(ctx, userID, workLogID, dto.UpdateWorkLogRequest{
		Type: &newType,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateWorkLog", mock.Anything, mock.Anything)
}

func (suite *WorkLogServiceTestSuite) TestDeleteWorkLog_OwnerAllowed() {
	ctx := context.Background()
	userID := uuid.NewString()
	workLogID := uuid.NewString()

	suite.mockRepo.On("FindWorkLogByID", ctx, workLogID).
		Return(&domain.WorkLog{WorkLogID: workLogID, UserID: userID}, nil).Once()
	suite.mockRepo.On("DeleteWorkLog", ctx, workLogID).Return(nil).Once()

	err := suite.service.DeleteWorkLog(ctx, userID, workLogID)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkLogServiceTestSuite) TestListWorkLogs_DefaultsToOwnLogs() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("ListWorkLogs", ctx, mock.MatchedBy(func(p portsrepo.ListWorkLogsParams) bool {
		return p.UserID != nil && *p.UserID == userID
	})).Return([]domain.WorkLog{}, "", nil).Once()

	logs, next, err := suite.service.ListWorkLogs(ctx, userID, dto.ListWorkLogsRequest{Limit: 50})

	suite.Require().NoError(err)
	suite.Empty(logs)
	suite.Empty(next)
}

func (suite *WorkLogServiceTestSuite) TestRecalculate_UpdatesOnlyChangedLogs() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	workerID := uuid.NewString()
	companyID := uuid.NewString()

	unchanged := domain.WorkLog{
		WorkLogID:          uuid.NewString(),
		UserID:             workerID,
		CompanyID:          &companyID,
		Type:               domain.WorkLogParticular,
		StartTime:          strPtr("09:00"),
		EndTime:            strPtr("17:00"),
		DurationHours:      decimal.RequireFromString("8"),
		Amount:             decimal.RequireFromString("160.00"),
		GrossAmount:        decimal.RequireFromString("160.00"),
		RateApplied:        decimal.RequireFromString("20"),
		IsGrossCalculation: false,
	}
	stale := domain.WorkLog{
		WorkLogID:          uuid.NewString(),
		UserID:             workerID,
		CompanyID:          &companyID,
		Type:               domain.WorkLogParticular,
		StartTime:          strPtr("09:00"),
		EndTime:            strPtr("17:00"),
		DurationHours:      decimal.RequireFromString("8"),
		Amount:             decimal.RequireFromString("120.00"),
		GrossAmount:        decimal.RequireFromString("120.00"),
		RateApplied:        decimal.RequireFromString("15"),
		IsGrossCalculation: false,
	}

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, requesterID).
		Return(map[string]struct{}{companyID: {}}, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockRepo.On("ListWorkLogsByCompanyID", ctx, companyID).
		Return([]domain.WorkLog{unchanged, stale}, nil).Once()
	suite.mockResolver.On("ResolveRate", ctx, workerID, companyID).
		Return(domain.PayRate{HourlyRate: decimal.RequireFromString("20")}, nil).Twice()
	suite.mockRepo.On("UpdateWorkLog", ctx, mock.MatchedBy(func(w domain.WorkLog) bool {
		return w.WorkLogID == stale.WorkLogID && w.Amount.Equal(decimal.RequireFromString("160.00"))
	})).Return(nil).Once()

	changed, err := suite.service.RecalculateCompanyWorkLogs(ctx, requesterID, companyID)

	suite.Require().NoError(err)
	suite.Equal(1, changed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestWorkLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkLogServiceTestSuite))
}
