package services

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	"github.com/shiftwise-app/shiftwise_backend/internal/dto"
)

// WorkLogSvcFacade orchestrates the work-session lifecycle: rate resolution,
// earnings computation and persistence of the computed fields.
type WorkLogSvcFacade interface {
	// CreateWorkLog logs a new session. The four computed fields are always
	// derived server-side; caller-supplied values for them are discarded,
	// except the manual-override amount.
	CreateWorkLog(ctx context.Context, requestingUserID string, req dto.CreateWorkLogRequest) (*domain.WorkLog, error)

	// UpdateWorkLog merges the changed fields onto the persisted session and
	// re-runs the entire computation against the merged record.
	UpdateWorkLog(ctx context.Context, requestingUserID, workLogID string, req dto.UpdateWorkLogRequest) (*domain.WorkLog, error)

	// GetWorkLogByID retrieves a single work log. Requires ownership or
	// supervision over the owner.
	GetWorkLogByID(ctx context.Context, requestingUserID, workLogID string) (*domain.WorkLog, error)

	// ListWorkLogs retrieves a filtered page of logs. Listing another user's
	// logs requires supervision over them.
	ListWorkLogs(ctx context.Context, requestingUserID string, req dto.ListWorkLogsRequest) ([]domain.WorkLog, string, error)

	// DeleteWorkLog removes a work log without cascading effects.
	DeleteWorkLog(ctx context.Context, requestingUserID, workLogID string) error

	// RecalculateCompanyWorkLogs re-runs the earnings computation for every
	// stored log of a company against current rates and deduction defaults.
	// Returns the number of logs whose amounts changed.
	RecalculateCompanyWorkLogs(ctx context.Context, requestingUserID, companyID string) (int, error)
}
