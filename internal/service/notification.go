package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

type NotificationService struct {
	repo *db.Postgres
}

func NewNotificationService(repo *db.Postgres) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify records a notification for a user. Failures are logged, not
// propagated; a broken notification must never fail the triggering action.
func (s *NotificationService) Notify(ctx context.Context, userID int64, ntype, content string, relatedID int64) {
	if err := s.repo.CreateNotification(ctx, userID, ntype, content, relatedID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("type", ntype).Msg("failed to create notification")
	}
}

func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool) ([]model.Notification, error) {
	return s.repo.ListNotifications(ctx, userID, unreadOnly)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	notification, err := s.getOwned(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	return s.repo.MarkNotificationRead(ctx, notification.ID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, notificationID, userID int64) error {
	notification, err := s.getOwned(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteNotification(ctx, notification.ID)
}

func (s *NotificationService) getOwned(ctx context.Context, notificationID, userID int64) (*model.Notification, error) {
	notification, err := s.repo.GetNotificationByID(ctx, notificationID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrAccessDenied
	}
	return notification, nil
}
