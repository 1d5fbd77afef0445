package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
	portsrepo "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/repositories"
	portssvc "github.com/shiftwise-app/shiftwise_backend/internal/core/ports/services"
)

// notificationService implements the NotificationSvcFacade interface
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service with the provided dependencies
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListUnreadByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unread notifications", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.notificationRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	return nil
}

// logNotificationSink is the default NotificationSink: it records the
// delivery attempt in the structured log and nothing else. A push or email
// integration replaces it at wiring time.
type logNotificationSink struct {
	BaseService
}

// NewLogNotificationSink creates a sink that only logs deliveries.
func NewLogNotificationSink() portssvc.NotificationSink {
	return &logNotificationSink{}
}

func (s *logNotificationSink) Notify(ctx context.Context, userID, message string, severity domain.NotificationType) error {
	s.LogInfo(ctx, "Notification delivery",
		slog.String("user_id", userID),
		slog.String("severity", string(severity)),
		slog.String("message", message))
	return nil
}
