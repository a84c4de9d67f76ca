package service

import (
	"context"

	"campusnet/internal/models"
	"campusnet/internal/repository"
)

// NotificationService exposes a user's stored notifications.
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	listed, err := s.notifications.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if listed == nil {
		listed = []models.Notification{}
	}
	return listed, nil
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Notifications
// owned by other users are reported as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}
