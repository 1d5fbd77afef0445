package dto

import (
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWorkLogRequest defines data for logging a new work session. Amount
// is the manual override used for ad-hoc entries without a company; any
// other computed field sent by a client is ignored and re-derived.
type CreateWorkLogRequest struct {
	UserID    *string            `json:"userID,omitempty"` // Supervisors may log on behalf of a subordinate
	CompanyID *string            `json:"companyID,omitempty"`
	Type      domain.WorkLogType `json:"type" binding:"required,oneof=particular tutorial"`

	Date      *string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"endTime,omitempty" binding:"omitempty,datetime=15:04"`

	StartDate *string `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`

	DurationHours *decimal.Decimal `json:"durationHours,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"` // Manual override

	HasCoordination bool  `json:"hasCoordination"`
	HasNight        bool  `json:"hasNight"`
	IsGross         *bool `json:"isGross,omitempty"` // Session-level override of the rate's gross flag

	Description string  `json:"description"`
	Client      *string `json:"client,omitempty"`
}

// UpdateWorkLogRequest defines a partial update. Nil fields keep their
// persisted values; the merged record is then fully recomputed.
type UpdateWorkLogRequest struct {
	CompanyID *string             `json:"companyID,omitempty"`
	Type      *domain.WorkLogType `json:"type,omitempty" binding:"omitempty,oneof=particular tutorial"`

	Date      *string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"startTime,omitempty" binding:"omitempty,datetime=15:04"`
	EndTime   *string `json:"endTime,omitempty" binding:"omitempty,datetime=15:04"`

	StartDate *string `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`

	DurationHours *decimal.Decimal `json:"durationHours,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`

	HasCoordination *bool `json:"hasCoordination,omitempty"`
	HasNight        *bool `json:"hasNight,omitempty"`
	IsGross         *bool `json:"isGross,omitempty"`

	Description *string `json:"description,omitempty"`
	Client      *string `json:"client,omitempty"`
}

// ListWorkLogsRequest defines the query filters for listing work logs.
type ListWorkLogsRequest struct {
	UserID    *string `form:"userID"`
	CompanyID *string `form:"companyID"`
	FromDate  *string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate    *string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit,default=50" binding:"gte=1,lte=200"`
	PageToken string  `form:"pageToken"`
}

// WorkLogResponse defines data returned for a work log.
type WorkLogResponse struct {
	WorkLogID string  `json:"workLogID"`
	UserID    string  `json:"userID"`
	CompanyID *string `json:"companyID,omitempty"`
	Type      string  `json:"type"`

	Date      *time.Time `json:"date,omitempty"`
	StartTime *string    `json:"startTime,omitempty"`
	EndTime   *string    `json:"endTime,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	HasCoordination bool    `json:"hasCoordination"`
	HasNight        bool    `json:"hasNight"`
	Description     string  `json:"description"`
	Client          *string `json:"client,omitempty"`

	DurationHours      decimal.Decimal `json:"durationHours"`
	Amount             decimal.Decimal `json:"amount"`
	GrossAmount        decimal.Decimal `json:"grossAmount"`
	RateApplied        decimal.Decimal `json:"rateApplied"`
	IsGrossCalculation bool            `json:"isGrossCalculation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToWorkLogResponse converts domain.WorkLog to DTO.
func ToWorkLogResponse(w *domain.WorkLog) WorkLogResponse {
	return WorkLogResponse{
		WorkLogID:          w.WorkLogID,
		UserID:             w.UserID,
		CompanyID:          w.CompanyID,
		Type:               string(w.Type),
		Date:               w.Date,
		StartTime:          w.StartTime,
		EndTime:            w.EndTime,
		StartDate:          w.StartDate,
		EndDate:            w.EndDate,
		HasCoordination:    w.HasCoordination,
		HasNight:           w.HasNight,
		Description:        w.Description,
		Client:             w.Client,
		DurationHours:      w.DurationHours,
		Amount:             w.Amount,
		GrossAmount:        w.GrossAmount,
		RateApplied:        w.RateApplied,
		IsGrossCalculation: w.IsGrossCalculation,
		CreatedAt:          w.CreatedAt,
		UpdatedAt:          w.UpdatedAt,
	}
}

// ListWorkLogsResponse wraps a page of work logs.
type ListWorkLogsResponse struct {
	WorkLogs      []WorkLogResponse `json:"workLogs"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

// ToListWorkLogsResponse converts a page of work logs to DTO.
func ToListWorkLogsResponse(ws []domain.WorkLog, nextToken string) ListWorkLogsResponse {
	list := make([]WorkLogResponse, len(ws))
	for i := range ws {
		list[i] = ToWorkLogResponse(&ws[i])
	}
	return ListWorkLogsResponse{WorkLogs: list, NextPageToken: nextToken}
}
