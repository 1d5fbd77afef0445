package services

import (
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
	"github.com/shiftwise-app/shiftwise_backend/pkg/config"
)

// NewServiceContainer wires up all application services with their
// dependencies and returns the container handlers consume.
func NewServiceContainer(cfg *config.AppConfig, repos portsrepo.RepositoryProvider, sink portssvc.NotificationSink) *portssvc.ServiceContainer {
	if sink == nil {
		sink = NewLogNotificationSink()
	}

	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(cfg, userSvc)
	companySvc := NewCompanyService(repos.CompanyRepo, repos.MembershipRepo, repos.PayRateRepo, sink)
	supervisionSvc := NewSupervisionService(companySvc, userSvc)
	payRateSvc := NewPayRateService(repos.PayRateRepo, companySvc, supervisionSvc)
	workLogSvc := NewWorkLogService(repos.WorkLogRepo, repos.CompanyRepo, payRateSvc, companySvc, supervisionSvc)
	notificationSvc := NewNotificationService(repos.NotificationRepo)

	return &portssvc.ServiceContainer{
		User:         userSvc,
		Token:        tokenSvc,
		Company:      companySvc,
		PayRate:      payRateSvc,
		WorkLog:      workLogSvc,
		Supervision:  supervisionSvc,
		Notification: notificationSvc,
	}
}
