package handlers

import (
	"net/http"

	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
	"github.com/shiftwise-app/shiftwise_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// workLogHandler handles HTTP requests related to work logs.
type workLogHandler struct {
	workLogService portssvc.WorkLogSvcFacade
}

// newWorkLogHandler creates a new workLogHandler.
func newWorkLogHandler(ws portssvc.WorkLogSvcFacade) *workLogHandler {
	return &workLogHandler{workLogService: ws}
}

// registerWorkLogRoutes registers routes related to work logs.
func registerWorkLogRoutes(rg *gin.RouterGroup, workLogService portssvc.WorkLogSvcFacade) {
	h := newWorkLogHandler(workLogService)

	workLogs := rg.Group("/worklogs")
	{
		workLogs.POST("", h.createWorkLog)
		workLogs.GET("", h.listWorkLogs)
		workLogs.GET("/:workLogID", h.getWorkLog)
		workLogs.PUT("/:workLogID", h.updateWorkLog)
		workLogs.DELETE("/:workLogID", h.deleteWorkLog)
	}
}

// createWorkLog godoc
// @Summary Log a work session
// @Description Logs a new session; duration and amounts are computed server-side from the caller's rate record. Supervisors may log on behalf of a subordinate.
// @Tags worklogs
// @Accept json
// @Produce json
// @Param workLog body dto.CreateWorkLogRequest true "Session details"
// @Success 201 {object} dto.WorkLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /worklogs [post]
func (h *workLogHandler) createWorkLog(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	workLog, err := h.workLogService.CreateWorkLog(c.Request.Context(), userID, req)
	if err != nil {
		respondCompanyError(c, err, "Failed to create work log")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkLogResponse(workLog))
}

// listWorkLogs godoc
// @Summary List work logs
// @Description Lists a filtered page of work logs, newest first. Listing another user's logs requires supervision over them; managers may list a whole company.
// @Tags worklogs
// @Produce json
// @Param userID query string false "Target user ID"
// @Param companyID query string false "Company ID"
// @Param fromDate query string false "Window start (YYYY-MM-DD)"
// @Param toDate query string false "Window end (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param pageToken query string false "Opaque page token"
// @Success 200 {object} dto.ListWorkLogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /worklogs [get]
func (h *workLogHandler) listWorkLogs(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ListWorkLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	workLogs, nextToken, err := h.workLogService.ListWorkLogs(c.Request.Context(), userID, req)
	if err != nil {
		respondCompanyError(c, err, "Failed to list work logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkLogsResponse(workLogs, nextToken))
}

// getWorkLog godoc
// @Summary Get a work log
// @Description Retrieves a single work log. Requires ownership or supervision over the owner.
// @Tags worklogs
// @Produce json
// @Param workLogID path string true "Work log ID"
// @Success 200 {object} dto.WorkLogResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /worklogs/{workLogID} [get]
func (h *workLogHandler) getWorkLog(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	workLog, err := h.workLogService.GetWorkLogByID(c.Request.Context(), userID, c.Param("workLogID"))
	if err != nil {
		respondCompanyError(c, err, "Failed to retrieve work log")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkLogResponse(workLog))
}

// updateWorkLog godoc
// @Summary Update a work log
// @Description Merges the changed fields onto the stored session and recomputes all derived amounts.
// @Tags worklogs
// @Accept json
// @Produce json
// @Param workLogID path string true "Work log ID"
// @Param workLog body dto.UpdateWorkLogRequest true "Changed fields"
// @Success 200 {object} dto.WorkLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /worklogs/{workLogID} [put]
func (h *workLogHandler) updateWorkLog(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	workLog, err := h.workLogService.UpdateWorkLog(c.Request.Context(), userID, c.Param("workLogID"), req)
	if err != nil {
		respondCompanyError(c, err, "Failed to update work log")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkLogResponse(workLog))
}

// deleteWorkLog godoc
// @Summary Delete a work log
// @Description Removes a work log. Requires ownership or supervision over the owner.
// @Tags worklogs
// @Produce json
// @Param workLogID path string true "Work log ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /worklogs/{workLogID} [delete]
func (h *workLogHandler) deleteWorkLog(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.workLogService.DeleteWorkLog(c.Request.Context(), userID, c.Param("workLogID")); err != nil {
		respondCompanyError(c, err, "Failed to delete work log")
		return
	}
	c.Status(http.StatusNoContent)
}
