package repositories

import (
	"context"
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// ListWorkLogsParams are the filters for listing work logs. Date filters
// match logs whose single date or date range overlaps the window.
type ListWorkLogsParams struct {
	UserID    *string
	CompanyID *string
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	PageToken string
}

// WorkLogReader defines read operations for work log data
type WorkLogReader interface {
	// FindWorkLogByID retrieves a specific work log by its ID.
	FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error)

	// ListWorkLogs retrieves a filtered page of work logs, newest first,
	// along with the token for the next page ("" when exhausted).
	ListWorkLogs(ctx context.Context, params ListWorkLogsParams) ([]domain.WorkLog, string, error)

	// ListWorkLogsByCompanyID retrieves every log of a company, for bulk
	// recalculation.
	ListWorkLogsByCompanyID(ctx context.Context, companyID string) ([]domain.WorkLog, error)
}

// WorkLogWriter defines write operations for work log data
type WorkLogWriter interface {
	// SaveWorkLog persists a new work log.
	SaveWorkLog(ctx context.Context, workLog domain.WorkLog) error

	// UpdateWorkLog replaces the persisted row with the given work log.
	UpdateWorkLog(ctx context.Context, workLog domain.WorkLog) error

	// DeleteWorkLog removes a work log. No cascade.
	DeleteWorkLog(ctx context.Context, workLogID string) error
}

// WorkLogRepositoryFacade combines all work-log repository interfaces
type WorkLogRepositoryFacade interface {
	WorkLogReader
	WorkLogWriter
}
