package handlers

import (
	"net/http"

	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shiftwise-app/shiftwise_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// payRateHandler handles HTTP requests related to rate records.
type payRateHandler struct {
	payRateService portssvc.PayRateSvcFacade
}

// newPayRateHandler creates a new payRateHandler.
func newPayRateHandler(ps portssvc.PayRateSvcFacade) *payRateHandler {
	return &payRateHandler{payRateService: ps}
}

// registerPayRateRoutes registers routes related to rate records.
func registerPayRateRoutes(rg *gin.RouterGroup, payRateService portssvc.PayRateSvcFacade) {
	h := newPayRateHandler(payRateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/users/:userID", h.getRates)
		rates.PUT("/users/:userID", h.updateRates)
		rates.GET("/companies/:companyID", h.listCompanyRates)
	}
}

// getRates godoc
// @Summary Get a user's rates
// @Description Retrieves the rate record for a user in a company, applying the zero-value net default when none exists. Reading another user's rates requires supervision over them.
// @Tags rates
// @Produce json
// @Param userID path string true "Target user ID"
// @Param companyID query string true "Company ID"
// @Success 200 {object} dto.PayRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/users/{userID} [get]
func (h *payRateHandler) getRates(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	companyID := c.Query("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "companyID query parameter required"})
		return
	}

	rate, err := h.payRateService.GetRates(c.Request.Context(), requesterID, c.Param("userID"), companyID)
	if err != nil {
		respondCompanyError(c, err, "Failed to retrieve rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayRateResponse(&rate))
}

// updateRates godoc
// @Summary Update a user's rates
// @Description Validates and replaces the rate record for a user in a company. Requires an elevated role in the company.
// @Tags rates
// @Accept json
// @Produce json
// @Param userID path string true "Target user ID"
// @Param rates body dto.UpdatePayRateRequest true "Rate configuration"
// @Success 200 {object} dto.PayRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/users/{userID} [put]
func (h *payRateHandler) updateRates(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePayRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	rate, err := h.payRateService.UpdateRates(c.Request.Context(), requesterID, c.Param("userID"), req)
	if err != nil {
		respondCompanyError(c, err, "Failed to update rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayRateResponse(rate))
}

// listCompanyRates godoc
// @Summary List a company's rate records
// @Description Lists all rate records of a company. Requires an elevated role there.
// @Tags rates
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {array} dto.PayRateResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/companies/{companyID} [get]
func (h *payRateHandler) listCompanyRates(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rates, err := h.payRateService.ListCompanyRates(c.Request.Context(), requesterID, c.Param("companyID"))
	if err != nil {
		respondCompanyError(c, err, "Failed to list rates")
		return
	}

	responses := make([]dto.PayRateResponse, len(rates))
	for i := range rates {
		responses[i] = dto.ToPayRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, responses)
}
