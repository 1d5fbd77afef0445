package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
)

type PgxMembershipRepository struct {
	BaseRepository
}

// newPgxMembershipRepository creates a new repository for membership data.
func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

const membershipColumns = `user_id, company_id, role, status, settings, joined_at`

func scanMembership(row pgx.Row) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Role,
		&m.Status,
		&m.Settings,
		&m.JoinedAt,
	)
	return m, err
}

// SaveMembership inserts a new membership row.
func (r *PgxMembershipRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO company_members (user_id, company_id, role, status, settings, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.CompanyID,
		membership.Role,
		membership.Status,
		membership.Settings,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save membership: %w", err)
	}
	return nil
}

// FindMembership retrieves the membership of a user in a company.
func (r *PgxMembershipRepository) FindMembership(ctx context.Context, userID, companyID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM company_members WHERE user_id = $1 AND company_id = $2;`
	membership, err := scanMembership(r.Pool.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return &membership, nil
}

// ListActiveMembershipsByUserID retrieves the user's active memberships.
func (r *PgxMembershipRepository) ListActiveMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM company_members WHERE user_id = $1 AND status = 'active';`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships for user %s: %w", userID, err)
	}
	defer rows.Close()

	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Membership, error) {
		return scanMembership(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan memberships: %w", err)
	}
	return memberships, nil
}

// ListMembersByCompanyID retrieves a company's memberships, optionally
// filtered by status.
func (r *PgxMembershipRepository) ListMembersByCompanyID(ctx context.Context, companyID string, status *domain.MemberStatus) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM company_members WHERE company_id = $1`
	args := []any{companyID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY joined_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of company %s: %w", companyID, err)
	}
	defer rows.Close()

	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Membership, error) {
		return scanMembership(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan members: %w", err)
	}
	return memberships, nil
}

// UpdateMembership persists role and settings changes to a membership.
func (r *PgxMembershipRepository) UpdateMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		UPDATE company_members
		SET role = $3, settings = $4
		WHERE user_id = $1 AND company_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.CompanyID,
		membership.Role,
		membership.Settings,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateMemberStatus transitions a membership's status. A non-nil notification
// is inserted in the same transaction, so the status change and the user's
// notice either both land or neither does.
func (r *PgxMembershipRepository) UpdateMemberStatus(ctx context.Context, userID, companyID string, status domain.MemberStatus, notification *domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	statusQuery := `
		UPDATE company_members
		SET status = $3
		WHERE user_id = $1 AND company_id = $2;
	`
	tag, err := tx.Exec(ctx, statusQuery, userID, companyID, status)
	if err != nil {
		return fmt.Errorf("failed to update member status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if notification != nil {
		notifQuery := `
			INSERT INTO notifications (notification_id, user_id, message, type, is_read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		_, err = tx.Exec(ctx, notifQuery,
			notification.NotificationID,
			notification.UserID,
			notification.Message,
			notification.Type,
			notification.IsRead,
			notification.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert status notification: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}
