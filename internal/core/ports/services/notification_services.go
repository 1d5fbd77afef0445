package services

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// NotificationSink delivers a notification to an external channel (push,
// email, ...). Delivery is best-effort: implementations must not be relied on
// for correctness and callers log-and-continue on failure.
type NotificationSink interface {
	Notify(ctx context.Context, userID, message string, severity domain.NotificationType) error
}

// NotificationSvcFacade manages stored user notifications.
type NotificationSvcFacade interface {
	// ListUnread retrieves the user's unread notifications, newest first.
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID string) error
}
