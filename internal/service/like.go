package service

import (
	"context"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

type LikeService struct {
	repo          *db.Postgres
	notifications *NotificationService
}

func NewLikeService(repo *db.Postgres, notifications *NotificationService) *LikeService {
	return &LikeService{repo: repo, notifications: notifications}
}

// Toggle likes the blog when unliked and unlikes it otherwise, returning the
// new state and the fresh like count.
func (s *LikeService) Toggle(ctx context.Context, blogID int64, principal *model.Principal) (bool, int64, error) {
	blog, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if db.IsNoRows(err) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	liked, err := s.repo.LikeExists(ctx, blogID, principal.UserID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		err = s.repo.DeleteLike(ctx, blogID, principal.UserID)
	} else {
		err = s.repo.CreateLike(ctx, blogID, principal.UserID)
	}
	if err != nil {
		return false, 0, err
	}

	if !liked && blog.UserID != principal.UserID {
		s.notifications.Notify(ctx, blog.UserID,
			model.NotificationNewLike,
			principal.Username+" liked your blog",
			blog.ID)
	}

	count, err := s.repo.CountLikesByBlog(ctx, blogID)
	if err != nil {
		return false, 0, err
	}

	return !liked, count, nil
}

func (s *LikeService) Count(ctx context.Context, blogID int64) (int64, error) {
	return s.repo.CountLikesByBlog(ctx, blogID)
}
