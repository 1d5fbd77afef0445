package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLogType distinguishes the two kinds of logged sessions.
type WorkLogType string

const (
	// WorkLogParticular is an hourly session on a single date with clock times.
	WorkLogParticular WorkLogType = "particular"
	// WorkLogTutorial is a multi-day session spanning an inclusive date range.
	WorkLogTutorial WorkLogType = "tutorial"
)

// WorkLog represents one logged work session together with its computed
// earnings. Amount, GrossAmount, RateApplied and DurationHours are always
// re-derived in full from the current rate record on create and update;
// clients cannot patch them directly except through the manual amount path.
type WorkLog struct {
	WorkLogID string  `json:"workLogID"` // Primary Key (UUID)
	UserID    string  `json:"userID"`    // FK -> users.user_id
	CompanyID *string `json:"companyID"` // Nullable; absent for ad-hoc manual entries

	Type WorkLogType `json:"type"`

	// Hourly (particular) temporal fields.
	Date      *time.Time `json:"date,omitempty"`
	StartTime *string    `json:"startTime,omitempty"` // "HH:MM"
	EndTime   *string    `json:"endTime,omitempty"`   // "HH:MM"

	// Multi-day (tutorial) temporal fields.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	HasCoordination bool `json:"hasCoordination"`
	HasNight        bool `json:"hasNight"`

	Description string  `json:"description"`
	Client      *string `json:"client,omitempty"`

	// Computed outputs.
	DurationHours      decimal.Decimal `json:"durationHours"`
	Amount             decimal.Decimal `json:"amount"`      // Net
	GrossAmount        decimal.Decimal `json:"grossAmount"` // Pre-deduction base plus supplements
	RateApplied        decimal.Decimal `json:"rateApplied"`
	IsGrossCalculation bool            `json:"isGrossCalculation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
