package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	"github.com/shiftwise-app/shiftwise_backend/internal/utils/pagination"
)

type PgxWorkLogRepository struct {
	BaseRepository
}

// newPgxWorkLogRepository creates a new repository for work log data.
func newPgxWorkLogRepository(pool *pgxpool.Pool) portsrepo.WorkLogRepositoryFacade {
	return &PgxWorkLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.WorkLogRepositoryFacade = (*PgxWorkLogRepository)(nil)

const workLogColumns = `work_log_id, user_id, company_id, type, date, start_time, end_time, start_date, end_date, has_coordination, has_night, description, client, duration_hours, amount, gross_amount, rate_applied, is_gross_calculation, created_at, updated_at`

func scanWorkLog(row pgx.Row) (domain.WorkLog, error) {
	var w domain.WorkLog
	err := row.Scan(
		&w.WorkLogID,
		&w.UserID,
		&w.CompanyID,
		&w.Type,
		&w.Date,
		&w.StartTime,
		&w.EndTime,
		&w.StartDate,
		&w.EndDate,
		&w.HasCoordination,
		&w.HasNight,
		&w.Description,
		&w.Client,
		&w.DurationHours,
		&w.Amount,
		&w.GrossAmount,
		&w.RateApplied,
		&w.IsGrossCalculation,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

// SaveWorkLog inserts a new work log row.
func (r *PgxWorkLogRepository) SaveWorkLog(ctx context.Context, workLog domain.WorkLog) error {
	query := `
		INSERT INTO work_logs (work_log_id, user_id, company_id, type, date, start_time, end_time, start_date, end_date, has_coordination, has_night, description, client, duration_hours, amount, gross_amount, rate_applied, is_gross_calculation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		workLog.WorkLogID,
		workLog.UserID,
		workLog.CompanyID,
		workLog.Type,
		workLog.Date,
		workLog.StartTime,
		workLog.EndTime,
		workLog.StartDate,
		workLog.EndDate,
		workLog.HasCoordination,
		workLog.HasNight,
		workLog.Description,
		workLog.Client,
		workLog.DurationHours,
		workLog.Amount,
		workLog.GrossAmount,
		workLog.RateApplied,
		workLog.IsGrossCalculation,
		workLog.CreatedAt,
		workLog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save work log %s: %w", workLog.WorkLogID, err)
	}
	return nil
}

// FindWorkLogByID retrieves a specific work log by its ID.
func (r *PgxWorkLogRepository) FindWorkLogByID(ctx context.Context, workLogID string) (*domain.WorkLog, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE work_log_id = $1;`
	workLog, err := scanWorkLog(r.Pool.QueryRow(ctx, query, workLogID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find work log %s: %w", workLogID, err)
	}
	return &workLog, nil
}

// workLogSortKeyExpr is the effective sort key of a work log: the date of an
// hourly log, the range start of a multi-day log, or the creation timestamp
// for undated manual entries. It is never NULL, so the same expression serves
// both the ORDER BY and the keyset predicate. The page token encodes the same
// key (workLogSortKey), which keeps undated rows reachable across page
// boundaries.
const workLogSortKeyExpr = `COALESCE(date, start_date, created_at)`

// buildListWorkLogsQuery assembles the paged listing query and its arguments.
func buildListWorkLogsQuery(params portsrepo.ListWorkLogsParams) (string, []any, int, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.UserID != nil {
		query += ` AND user_id = ` + arg(*params.UserID)
	}
	if params.CompanyID != nil {
		query += ` AND company_id = ` + arg(*params.CompanyID)
	}
	if params.FromDate != nil {
		query += ` AND COALESCE(date, end_date) >= ` + arg(*params.FromDate)
	}
	if params.ToDate != nil {
		query += ` AND COALESCE(date, start_date) <= ` + arg(*params.ToDate)
	}
	if params.PageToken != "" {
		tokenDate, tokenCreated, err := pagination.DecodeToken(params.PageToken)
		if err != nil {
			return "", nil, 0, apperrors.NewValidationFailedError("invalid page token")
		}
		query += ` AND (` + workLogSortKeyExpr + `, created_at) < (` + arg(tokenDate) + `, ` + arg(tokenCreated) + `)`
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether another page exists.
	query += ` ORDER BY ` + workLogSortKeyExpr + ` DESC, created_at DESC LIMIT ` + arg(limit+1) + `;`
	return query, args, limit, nil
}

// workLogSortKey mirrors workLogSortKeyExpr for token encoding.
func workLogSortKey(w *domain.WorkLog) time.Time {
	if w.Date != nil {
		return *w.Date
	}
	if w.StartDate != nil {
		return *w.StartDate
	}
	return w.CreatedAt
}

// workLogPage trims the over-fetched result to the page size and, when more
// rows exist, builds the token pointing past the last returned row.
func workLogPage(workLogs []domain.WorkLog, limit int) ([]domain.WorkLog, string) {
	if len(workLogs) <= limit {
		return workLogs, ""
	}
	workLogs = workLogs[:limit]
	last := &workLogs[len(workLogs)-1]
	return workLogs, pagination.EncodeToken(workLogSortKey(last), last.CreatedAt)
}

// ListWorkLogs retrieves a filtered page of work logs, newest first, keyed on
// (effective date, created_at). Date filters match logs whose date or range
// overlaps the window.
func (r *PgxWorkLogRepository) ListWorkLogs(ctx context.Context, params portsrepo.ListWorkLogsParams) ([]domain.WorkLog, string, error) {
	query, args, limit, err := buildListWorkLogsQuery(params)
	if err != nil {
		return nil, "", err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query work logs: %w", err)
	}
	defer rows.Close()

	workLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WorkLog, error) {
		return scanWorkLog(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan work logs: %w", err)
	}

	workLogs, nextToken := workLogPage(workLogs, limit)
	return workLogs, nextToken, nil
}

// ListWorkLogsByCompanyID retrieves every log of a company for bulk
// recalculation, oldest first so reruns are deterministic.
func (r *PgxWorkLogRepository) ListWorkLogsByCompanyID(ctx context.Context, companyID string) ([]domain.WorkLog, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE company_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs for company %s: %w", companyID, err)
	}
	defer rows.Close()

	workLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WorkLog, error) {
		return scanWorkLog(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan company work logs: %w", err)
	}
	return workLogs, nil
}

// UpdateWorkLog replaces the mutable columns of the persisted row.
func (r *PgxWorkLogRepository) UpdateWorkLog(ctx context.Context, workLog domain.WorkLog) error {
	query := `
		UPDATE work_logs
		SET company_id = $2, type = $3, date = $4, start_time = $5, end_time = $6, start_date = $7, end_date = $8,
			has_coordination = $9, has_night = $10, description = $11, client = $12,
			duration_hours = $13, amount = $14, gross_amount = $15, rate_applied = $16, is_gross_calculation = $17,
			updated_at = $18
		WHERE work_log_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		workLog.WorkLogID,
		workLog.CompanyID,
		workLog.Type,
		workLog.Date,
		workLog.StartTime,
		workLog.EndTime,
		workLog.StartDate,
		workLog.EndDate,
		workLog.HasCoordination,
		workLog.HasNight,
		workLog.Description,
		workLog.Client,
		workLog.DurationHours,
		workLog.Amount,
		workLog.GrossAmount,
		workLog.RateApplied,
		workLog.IsGrossCalculation,
		workLog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update work log %s: %w", workLog.WorkLogID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWorkLog removes a work log. No cascade.
func (r *PgxWorkLogRepository) DeleteWorkLog(ctx context.Context, workLogID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM work_logs WHERE work_log_id = $1;`, workLogID)
	if err != nil {
		return fmt.Errorf("failed to delete work log %s: %w", workLogID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
