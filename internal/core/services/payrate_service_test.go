package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PayRateRepository ---
type MockPayRateRepository struct {
	mock.Mock
}

func (m *MockPayRateRepository) FindPayRate(ctx context.Context, userID, companyID string) (*domain.PayRate, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayRate), args.Error(1)
}

func (m *MockPayRateRepository) ListPayRatesByCompanyID(ctx context.Context, companyID string) ([]domain.PayRate, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayRate), args.Error(1)
}

func (m *MockPayRateRepository) UpsertPayRate(ctx context.Context, rate domain.PayRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock SupervisionSvc ---
type MockSupervision struct {
	mock.Mock
}

func (m *MockSupervision) CanSupervise(ctx context.Context, supervisorID, targetUserID string) (bool, error) {
	args := m.Called(ctx, supervisorID, targetUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupervision) RequireCanActOn(ctx context.Context, actorID, targetUserID string) error {
	args := m.Called(ctx, actorID, targetUserID)
	return args.Error(0)
}

// --- Test Suite ---
type PayRateServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockPayRateRepository
	mockAuthority   *MockMembershipAuthority
	mockSupervision *MockSupervision
	service         portssvc.PayRateSvcFacade
}

func (suite *PayRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPayRateRepository)
	suite.mockAuthority = new(MockMembershipAuthority)
	suite.mockSupervision = new(MockSupervision)
	suite.service = services.NewPayRateService(suite.mockRepo, suite.mockAuthority, suite.mockSupervision)
}

func (suite *PayRateServiceTestSuite) TestResolveRate_Existing() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()
	stored := &domain.PayRate{
		UserID:     userID,
		CompanyID:  companyID,
		HourlyRate: decimal.RequireFromString("20"),
		IsGross:    true,
	}

	suite.mockRepo.On("FindPayRate", ctx, userID, companyID).Return(stored, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, userID, companyID)

	suite.Require().NoError(err)
	suite.True(rate.HourlyRate.Equal(stored.HourlyRate))
	suite.True(rate.IsGross)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayRateServiceTestSuite) TestResolveRate_MissingYieldsNetDefault() {
	ctx := context.Background()
	userID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockRepo.On("FindPayRate", ctx, userID, companyID).
		Return(nil, apperrors.NewNotFoundError("no rate")).Once()

	rate, err := suite.service.ResolveRate(ctx, userID, companyID)

	suite.Require().NoError(err)
	suite.True(rate.HourlyRate.IsZero())
	suite.True(rate.DailyRate.IsZero())
	suite.False(rate.IsGross)
	suite.Nil(rate.DeductionSS)
}

func (suite *PayRateServiceTestSuite) TestGetRates_OtherUserRequiresSupervision() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockSupervision.On("RequireCanActOn", ctx, requesterID, targetID).
		Return(apperrors.NewForbiddenError("nope")).Once()

	_, err := suite.service.GetRates(ctx, requesterID, targetID, companyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindPayRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayRateServiceTestSuite) TestUpdateRates_Success() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()
	companyID := uuid.NewString()
	req := dto.UpdatePayRateRequest{
		CompanyID:     companyID,
		HourlyRate:    decimal.RequireFromString("18.50"),
		IsGross:       true,
		DeductionIRPF: decimal.RequireFromString("0.15"),
	}

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, requesterID).
		Return(map[string]struct{}{companyID: {}}, nil).Once()
	suite.mockRepo.On("UpsertPayRate", ctx, mock.MatchedBy(func(r domain.PayRate) bool {
		return r.UserID == targetID && r.CompanyID == companyID && r.HourlyRate.Equal(req.HourlyRate) && r.IsGross
	})).Return(nil).Once()

	rate, err := suite.service.UpdateRates(ctx, requesterID, targetID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.DeductionIRPF.Equal(req.DeductionIRPF))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayRateServiceTestSuite) TestUpdateRates_RejectsFullDeduction() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()
	companyID := uuid.NewString()
	ss := decimal.RequireFromString("0.50")
	req := dto.UpdatePayRateRequest{
		CompanyID:      companyID,
		DeductionSS:    &ss,
		DeductionIRPF:  decimal.RequireFromString("0.40"),
		DeductionExtra: decimal.RequireFromString("0.10"),
	}

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, requesterID).
		Return(map[string]struct{}{companyID: {}}, nil).Once()

	_, err := suite.service.UpdateRates(ctx, requesterID, targetID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertPayRate", mock.Anything, mock.Anything)
}

func (suite *PayRateServiceTestSuite) TestUpdateRates_RequiresElevatedRole() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	targetID := uuid.NewString()
	req := dto.UpdatePayRateRequest{CompanyID: uuid.NewString()}

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, requesterID).
		Return(map[string]struct{}{}, nil).Once()

	_, err := suite.service.UpdateRates(ctx, requesterID, targetID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PayRateServiceTestSuite) TestListCompanyRates_EmptyIsNotNil() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, requesterID).
		Return(map[string]struct{}{companyID: {}}, nil).Once()
	suite.mockRepo.On("ListPayRatesByCompanyID", ctx, companyID).Return(nil, nil).Once()

	rates, err := suite.service.ListCompanyRates(ctx, requesterID, companyID)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

func TestPayRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayRateServiceTestSuite))
}
