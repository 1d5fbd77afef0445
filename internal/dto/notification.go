package dto

import (
	"time"

	"github.com/shiftwise-app/shiftwise_backend/internal/core/domain"
)

// NotificationResponse defines data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts domain.Notification to DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Message:        n.Message,
		Type:           string(n.Type),
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications to DTOs.
func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	list := make([]NotificationResponse, len(ns))
	for i := range ns {
		list[i] = ToNotificationResponse(&ns[i])
	}
	return list
}
