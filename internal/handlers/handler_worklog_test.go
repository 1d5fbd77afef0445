package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shiftwise-app/shiftwise_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WorkLogService ---
type MockWorkLogService struct {
	mock.Mock
}

func (m *MockWorkLogService) CreateWorkLog(ctx context.Context, requestingUserID string, req dto.CreateWorkLogRequest) (*domain.WorkLog, error) {
	args := m.Called(ctx, requestingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}
func (m *MockWorkLogService) UpdateWorkLog(ctx context.Context, requestingUserID, workLogID string, req dto.UpdateWorkLogRequest) (*domain.WorkLog, error) {
	args := m.Called(ctx, requestingUserID, workLogID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}
func (m *MockWorkLogService) GetWorkLogByID(ctx context.Context, requestingUserID, workLogID string) (*domain.WorkLog, error) {
	args := m.Called(ctx, requestingUserID, workLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}
func (m *MockWorkLogService) ListWorkLogs(ctx context.Context, requestingUserID string, req dto.ListWorkLogsRequest) ([]domain.WorkLog, string, error) {
	args := m.Called(ctx, requestingUserID, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.WorkLog), args.String(1), args.Error(2)
}
func (m *MockWorkLogService) DeleteWorkLog(ctx context.Context, requestingUserID, workLogID string) error {
	args := m.Called(ctx, requestingUserID, workLogID)
	return args.Error(0)
}
func (m *MockWorkLogService) RecalculateCompanyWorkLogs(ctx context.Context, requestingUserID, companyID string) (int, error) {
	args := m.Called(ctx, requestingUserID, companyID)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WorkLogSvcFacade = (*MockWorkLogService)(nil)

// --- Test Suite ---
type WorkLogHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockWorkLogService *MockWorkLogService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *WorkLogHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "shiftwise-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WorkLogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockWorkLogService = new(MockWorkLogService)

	v1 := suite.router.Group("/api/v1")
	registerWorkLogRoutes(v1, suite.mockWorkLogService)
}

func (suite *WorkLogHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *WorkLogHandlerTestSuite) TestCreateWorkLog_Success() {
	userID := uuid.NewString()
	companyID := uuid.NewString()

	expected := &domain.WorkLog{
		WorkLogID:   uuid.NewString(),
		UserID:      userID,
		CompanyID:   &companyID,
		Type:        domain.WorkLogParticular,
		Amount:      decimal.RequireFromString("149.63"),
		GrossAmount: decimal.RequireFromString("160.00"),
	}

	suite.mockWorkLogService.On("CreateWorkLog",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.CreateWorkLogRequest) bool {
			return req.CompanyID != nil && *req.CompanyID == companyID && req.Type == domain.WorkLogParticular
		}),
	).Return(expected, nil).Once()

	body, _ := json.Marshal(map[string]any{
		"companyID": companyID,
		"type":      "particular",
		"date":      "2025-03-10",
		"startTime": "09:00",
		"endTime":   "17:00",
	})
	w := suite.authedRequest(http.MethodPost, "/api/v1/worklogs", body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.WorkLogResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.WorkLogID, resp.WorkLogID)
	suite.True(resp.Amount.Equal(expected.Amount))

	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestCreateWorkLog_InvalidType() {
	userID := uuid.NewString()

	body, _ := json.Marshal(map[string]any{
		"type": "holiday",
	})
	w := suite.authedRequest(http.MethodPost, "/api/v1/worklogs", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWorkLogService.AssertNotCalled(suite.T(), "CreateWorkLog")
}

func (suite *WorkLogHandlerTestSuite) TestListWorkLogs_PassesFiltersAndToken() {
	userID := uuid.NewString()
	companyID := uuid.NewString()

	logs := []domain.WorkLog{
		{WorkLogID: uuid.NewString(), UserID: userID, Type: domain.WorkLogParticular},
		{WorkLogID: uuid.NewString(), UserID: userID, Type: domain.WorkLogTutorial},
	}

	suite.mockWorkLogService.On("ListWorkLogs",
		mock.Anything,
		userID,
		mock.MatchedBy(func(req dto.ListWorkLogsRequest) bool {
			return req.CompanyID != nil && *req.CompanyID == companyID && req.Limit == 25
		}),
	).Return(logs, "next-token", nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/worklogs?companyID="+companyID+"&limit=25", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListWorkLogsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.WorkLogs, 2)
	suite.Equal("next-token", resp.NextPageToken)

	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestGetWorkLog_NotFound() {
	userID := uuid.NewString()
	workLogID := uuid.NewString()

	suite.mockWorkLogService.On("GetWorkLogByID", mock.Anything, userID, workLogID).
		Return(nil, apperrors.NewNotFoundError("work log not found")).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/worklogs/"+workLogID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestDeleteWorkLog_Forbidden() {
	userID := uuid.NewString()
	workLogID := uuid.NewString()

	suite.mockWorkLogService.On("DeleteWorkLog", mock.Anything, userID, workLogID).
		Return(apperrors.NewForbiddenError("not allowed")).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/worklogs/"+workLogID, nil, userID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockWorkLogService.AssertExpectations(suite.T())
}

func (suite *WorkLogHandlerTestSuite) TestRequests_RejectedWithoutToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/worklogs", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWorkLogService.AssertNotCalled(suite.T(), "ListWorkLogs")
}

// --- Run Test Suite ---
func TestWorkLogHandler(t *testing.T) {
	suite.Run(t, new(WorkLogHandlerTestSuite))
}
