package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MembershipAuthoritySvc ---
type MockMembershipAuthority struct {
	mock.Mock
}

func (m *MockMembershipAuthority) ListActiveMemberships(ctx context.Context, userID string) ([]domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipAuthority) ElevatedCompanyIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

// --- Mock UserReaderSvc ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Test Suite ---
type SupervisionServiceTestSuite struct {
	suite.Suite
	mockAuthority *MockMembershipAuthority
	mockUsers     *MockUserReader
	service       portssvc.SupervisionSvc
}

func (suite *SupervisionServiceTestSuite) SetupTest() {
	suite.mockAuthority = new(MockMembershipAuthority)
	suite.mockUsers = new(MockUserReader)
	suite.service = services.NewSupervisionService(suite.mockAuthority, suite.mockUsers)
}

func (suite *SupervisionServiceTestSuite) TestCanSupervise_SharedCompany() {
	ctx := context.Background()
	supervisorID := uuid.NewString()
	targetID := uuid.NewString()
	companyID := uuid.NewString()

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, supervisorID).
		Return(map[string]struct{}{companyID: {}}, nil).Once()
	suite.mockAuthority.On("ListActiveMemberships", ctx, targetID).
		Return([]domain.Membership{{UserID: targetID, CompanyID: companyID, Status: domain.MemberStatusActive}}, nil).Once()

	ok, err := suite.service.CanSupervise(ctx, supervisorID, targetID)

	suite.Require().NoError(err)
	suite.True(ok)
	suite.mockAuthority.AssertExpectations(suite.T())
}

func (suite *SupervisionServiceTestSuite) TestCanSupervise_NoElevatedRolesShortCircuits() {
	ctx := context.Background()
	supervisorID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, supervisorID).
		Return(map[string]struct{}{}, nil).Once()

	ok, err := suite.service.CanSupervise(ctx, supervisorID, targetID)

	suite.Require().NoError(err)
	suite.False(ok)
	// The target's memberships are never queried.
	suite.mockAuthority.AssertNotCalled(suite.T(), "ListActiveMemberships", ctx, targetID)
}

func (suite *SupervisionServiceTestSuite) TestCanSupervise_DisjointCompanies() {
	ctx := context.Background()
	supervisorID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, supervisorID).
		Return(map[string]struct{}{uuid.NewString(): {}}, nil).Once()
	suite.mockAuthority.On("ListActiveMemberships", ctx, targetID).
		Return([]domain.Membership{{CompanyID: uuid.NewString(), Status: domain.MemberStatusActive}}, nil).Once()

	ok, err := suite.service.CanSupervise(ctx, supervisorID, targetID)

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *SupervisionServiceTestSuite) TestRequireCanActOn_SelfAlwaysAllowed() {
	ctx := context.Background()
	userID := uuid.NewString()

	err := suite.service.RequireCanActOn(ctx, userID, userID)

	suite.NoError(err)
	suite.mockAuthority.AssertNotCalled(suite.T(), "ElevatedCompanyIDs", mock.Anything, mock.Anything)
}

func (suite *SupervisionServiceTestSuite) TestRequireCanActOn_PlatformAdminBypasses() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockUsers.On("GetUserByID", ctx, adminID).
		Return(&domain.User{UserID: adminID, Role: domain.UserRoleAdmin}, nil).Once()

	err := suite.service.RequireCanActOn(ctx, adminID, targetID)

	suite.NoError(err)
	suite.mockAuthority.AssertNotCalled(suite.T(), "ElevatedCompanyIDs", mock.Anything, mock.Anything)
}

func (suite *SupervisionServiceTestSuite) TestRequireCanActOn_DeniedIsForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	targetID := uuid.NewString()

	suite.mockUsers.On("GetUserByID", ctx, actorID).
		Return(&domain.User{UserID: actorID, Role: domain.UserRoleUser}, nil).Once()
	suite.mockAuthority.On("ElevatedCompanyIDs", ctx, actorID).
		Return(map[string]struct{}{}, nil).Once()

	err := suite.service.RequireCanActOn(ctx, actorID, targetID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestSupervisionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SupervisionServiceTestSuite))
}
