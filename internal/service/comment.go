package service

import (
	"context"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

type CommentService struct {
	repo          *db.Postgres
	notifications *NotificationService
}

func NewCommentService(repo *db.Postgres, notifications *NotificationService) *CommentService {
	return &CommentService{repo: repo, notifications: notifications}
}

// Create adds a comment and notifies the blog owner unless they wrote it.
func (s *CommentService) Create(ctx context.Context, principal *model.Principal, req model.CommentRequest) (*model.Comment, error) {
	blog, err := s.repo.GetBlogByID(ctx, req.BlogID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment, err := s.repo.CreateComment(ctx, blog.ID, principal.UserID, req.Content)
	if err != nil {
		return nil, err
	}

	if blog.UserID != principal.UserID {
		s.notifications.Notify(ctx, blog.UserID,
			model.NotificationNewComment,
			principal.Username+" commented on your blog",
			blog.ID)
	}

	return comment, nil
}

func (s *CommentService) ListByBlog(ctx context.Context, blogID int64) ([]model.Comment, error) {
	return s.repo.ListCommentsByBlog(ctx, blogID)
}

// Delete is allowed for the comment author and the blog owner.
func (s *CommentService) Delete(ctx context.Context, commentID int64, principal *model.Principal) error {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if comment.UserID != principal.UserID {
		blog, err := s.repo.GetBlogByID(ctx, comment.BlogID)
		if err != nil {
			return err
		}
		if blog.UserID != principal.UserID {
			return ErrAccessDenied
		}
	}

	return s.repo.DeleteComment(ctx, commentID)
}
