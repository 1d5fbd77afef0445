package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shiftwise-app/shiftwise_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies and memberships.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
	workLogService portssvc.WorkLogSvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade, ws portssvc.WorkLogSvcFacade) *companyHandler {
	return &companyHandler{companyService: cs, workLogService: ws}
}

// registerCompanyRoutes registers routes related to companies.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade, workLogService portssvc.WorkLogSvcFacade) {
	h := newCompanyHandler(companyService, workLogService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("/available", h.listAvailableCompanies)
		companies.GET("/mine", h.listMyCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.PUT("/:companyID", h.updateCompany)
		companies.POST("/:companyID/join", h.joinCompany)
		companies.GET("/:companyID/members", h.listMembers)
		companies.POST("/:companyID/members", h.addMember)
		companies.PUT("/:companyID/members/:userID", h.updateMember)
		companies.POST("/:companyID/recalculate", h.recalculateWorkLogs)
	}
}

func (h *companyHandler) callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// respondCompanyError maps service errors to HTTP responses.
func respondCompanyError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Company not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Requires an elevated role in this company"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a company; the creator becomes an active admin member.
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, userID)
	if err != nil {
		respondCompanyError(c, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listAvailableCompanies godoc
// @Summary List joinable companies
// @Description Lists companies the caller has no membership in, or only a rejected one.
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/available [get]
func (h *companyHandler) listAvailableCompanies(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListAvailableCompanies(c.Request.Context(), userID)
	if err != nil {
		respondCompanyError(c, err, "Failed to list companies")
		return
	}

	responses := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = dto.ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listMyCompanies godoc
// @Summary List the caller's companies
// @Description Lists companies the caller is an active member of, with role and effective settings.
// @Tags companies
// @Produce json
// @Success 200 {array} dto.UserCompanyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/mine [get]
func (h *companyHandler) listMyCompanies(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		respondCompanyError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondCompanyError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Description Applies changes to a company. Requires an elevated role there.
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Company changes"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), userID, c.Param("companyID"), req)
	if err != nil {
		respondCompanyError(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// joinCompany godoc
// @Summary Request to join a company
// @Description Creates a pending membership request for the caller.
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 201 {object} dto.MemberResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/join [post]
func (h *companyHandler) joinCompany(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	membership, err := h.companyService.JoinCompany(c.Request.Context(), userID, c.Param("companyID"))
	if err != nil {
		respondCompanyError(c, err, "Failed to request membership")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(membership))
}

// listMembers godoc
// @Summary List company members
// @Description Lists a company's memberships, optionally filtered by status. Requires an elevated role.
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Param status query string false "Filter by status" Enums(pending, active, rejected)
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/members [get]
func (h *companyHandler) listMembers(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var status *domain.MemberStatus
	if s := c.Query("status"); s != "" {
		ms := domain.MemberStatus(s)
		status = &ms
	}

	members, err := h.companyService.ListMembers(c.Request.Context(), userID, c.Param("companyID"), status)
	if err != nil {
		respondCompanyError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// addMember godoc
// @Summary Add a member
// @Description Directly adds a user to a company with status active. Requires an elevated role.
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/members [post]
func (h *companyHandler) addMember(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	membership, err := h.companyService.AddMember(c.Request.Context(), userID, c.Param("companyID"), req)
	if err != nil {
		respondCompanyError(c, err, "Failed to add member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(membership))
}

// updateMember godoc
// @Summary Update a membership
// @Description Applies role/status/settings changes to a membership. Rejecting a member notifies them.
// @Tags companies
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param userID path string true "Member user ID"
// @Param member body dto.UpdateMemberRequest true "Membership changes"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/members/{userID} [put]
func (h *companyHandler) updateMember(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	membership, err := h.companyService.UpdateMember(c.Request.Context(), userID, c.Param("companyID"), c.Param("userID"), req)
	if err != nil {
		respondCompanyError(c, err, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(membership))
}

// recalculateWorkLogs godoc
// @Summary Recalculate company work logs
// @Description Re-runs the earnings computation for every stored log of the company against current rates.
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} map[string]int
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/recalculate [post]
func (h *companyHandler) recalculateWorkLogs(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	changed, err := h.workLogService.RecalculateCompanyWorkLogs(c.Request.Context(), userID, c.Param("companyID"))
	if err != nil {
		respondCompanyError(c, err, "Failed to recalculate work logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}
