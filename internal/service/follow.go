package service

import (
	"context"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

type FollowService struct {
	repo          *db.Postgres
	notifications *NotificationService
}

func NewFollowService(repo *db.Postgres, notifications *NotificationService) *FollowService {
	return &FollowService{repo: repo, notifications: notifications}
}

func (s *FollowService) Follow(ctx context.Context, principal *model.Principal, targetID int64) error {
	if targetID == principal.UserID {
		return ErrInvalidInput
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	exists, err := s.repo.FollowExists(ctx, principal.UserID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	if err := s.repo.CreateFollow(ctx, principal.UserID, targetID); err != nil {
		return err
	}

	s.notifications.Notify(ctx, target.ID,
		model.NotificationNewFollow,
		principal.Username+" started following you",
		principal.UserID)
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, principal *model.Principal, targetID int64) error {
	exists, err := s.repo.FollowExists(ctx, principal.UserID, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return s.repo.DeleteFollow(ctx, principal.UserID, targetID)
}

func (s *FollowService) Followers(ctx context.Context, userID int64) ([]model.FollowerResponse, error) {
	return s.repo.ListFollowers(ctx, userID)
}

func (s *FollowService) Following(ctx context.Context, userID int64) ([]model.FollowerResponse, error) {
	return s.repo.ListFollowing(ctx, userID)
}
