package repositories

import (
	"context"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence for user notifications.
type NotificationRepositoryFacade interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ListUnreadByUserID retrieves a user's unread notifications, newest first.
	ListUnreadByUserID(ctx context.Context, userID string) ([]domain.Notification, error)

	// MarkRead marks one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID string) error
}
