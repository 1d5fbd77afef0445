package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		MembershipRepo:   newPgxMembershipRepository(dbPool),
		PayRateRepo:      newPgxPayRateRepository(dbPool),
		WorkLogRepo:      newPgxWorkLogRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
