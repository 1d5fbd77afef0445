package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiftwise-app/shiftwise_backend/internal/apperrors"
	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
)

type PgxPayRateRepository struct {
	BaseRepository
}

// newPgxPayRateRepository creates a new repository for rate records.
func newPgxPayRateRepository(pool *pgxpool.Pool) portsrepo.PayRateRepositoryFacade {
	return &PgxPayRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PayRateRepositoryFacade = (*PgxPayRateRepository)(nil)

const payRateColumns = `user_id, company_id, hourly_rate, daily_rate, coordination_rate, night_rate, is_gross, deduction_ss, deduction_irpf, deduction_extra, updated_at`

func scanPayRate(row pgx.Row) (domain.PayRate, error) {
	var p domain.PayRate
	err := row.Scan(
		&p.UserID,
		&p.CompanyID,
		&p.HourlyRate,
		&p.DailyRate,
		&p.CoordinationRate,
		&p.NightRate,
		&p.IsGross,
		&p.DeductionSS,
		&p.DeductionIRPF,
		&p.DeductionExtra,
		&p.UpdatedAt,
	)
	return p, err
}

// FindPayRate retrieves the rate record for a (user, company) pair.
func (r *PgxPayRateRepository) FindPayRate(ctx context.Context, userID, companyID string) (*domain.PayRate, error) {
	query := `SELECT ` + payRateColumns + ` FROM user_company_rates WHERE user_id = $1 AND company_id = $2;`
	rate, err := scanPayRate(r.Pool.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pay rate: %w", err)
	}
	return &rate, nil
}

// ListPayRatesByCompanyID retrieves all rate records of a company.
func (r *PgxPayRateRepository) ListPayRatesByCompanyID(ctx context.Context, companyID string) ([]domain.PayRate, error) {
	query := `SELECT ` + payRateColumns + ` FROM user_company_rates WHERE company_id = $1 ORDER BY user_id;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates for company %s: %w", companyID, err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PayRate, error) {
		return scanPayRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rates: %w", err)
	}
	return rates, nil
}

// UpsertPayRate creates or replaces the rate record for its pair. The full
// record is replaced so a removed SS override reverts to the company default.
func (r *PgxPayRateRepository) UpsertPayRate(ctx context.Context, rate domain.PayRate) error {
	query := `
		INSERT INTO user_company_rates (user_id, company_id, hourly_rate, daily_rate, coordination_rate, night_rate, is_gross, deduction_ss, deduction_irpf, deduction_extra, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, company_id) DO UPDATE SET
			hourly_rate = EXCLUDED.hourly_rate,
			daily_rate = EXCLUDED.daily_rate,
			coordination_rate = EXCLUDED.coordination_rate,
			night_rate = EXCLUDED.night_rate,
			is_gross = EXCLUDED.is_gross,
			deduction_ss = EXCLUDED.deduction_ss,
			deduction_irpf = EXCLUDED.deduction_irpf,
			deduction_extra = EXCLUDED.deduction_extra,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.UserID,
		rate.CompanyID,
		rate.HourlyRate,
		rate.DailyRate,
		rate.CoordinationRate,
		rate.NightRate,
		rate.IsGross,
		rate.DeductionSS,
		rate.DeductionIRPF,
		rate.DeductionExtra,
		rate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pay rate: %w", err)
	}
	return nil
}
