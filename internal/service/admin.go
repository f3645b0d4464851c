package service

import (
	"context"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

// AdminService backs the moderation surface. Role enforcement happens at the
// middleware layer; these methods assume the caller is already an admin.
type AdminService struct {
	repo    *db.Postgres
	reports *ReportService
}

func NewAdminService(repo *db.Postgres, reports *ReportService) *AdminService {
	return &AdminService{repo: repo, reports: reports}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *AdminService) BanUser(ctx context.Context, userID int64, actor *model.Principal) error {
	return s.setBanned(ctx, userID, actor, true)
}

func (s *AdminService) UnbanUser(ctx context.Context, userID int64, actor *model.Principal) error {
	return s.setBanned(ctx, userID, actor, false)
}

func (s *AdminService) setBanned(ctx context.Context, userID int64, actor *model.Principal, banned bool) error {
	if err := s.blockSelfAction(userID, actor); err != nil {
		return err
	}
	if err := s.repo.SetUserBanned(ctx, userID, banned); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteUser removes the account and all of its content, children first.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64, actor *model.Principal) error {
	if err := s.blockSelfAction(userID, actor); err != nil {
		return err
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.DeleteUserWithContent(ctx, userID)
}

// Moderating your own account is rejected outright.
func (s *AdminService) blockSelfAction(targetID int64, actor *model.Principal) error {
	if actor != nil && actor.UserID == targetID {
		return ErrInvalidInput
	}
	return nil
}

func (s *AdminService) ListAllBlogs(ctx context.Context) ([]model.Blog, error) {
	return s.repo.ListBlogs(ctx, true)
}

// ToggleBlogVisible flips visibility and returns the new state.
func (s *AdminService) ToggleBlogVisible(ctx context.Context, blogID int64) (bool, error) {
	visible, err := s.repo.ToggleBlogVisible(ctx, blogID)
	if err != nil {
		if db.IsNoRows(err) {
			return false, ErrNotFound
		}
		return false, err
	}
	return visible, nil
}

func (s *AdminService) DeleteBlog(ctx context.Context, blogID int64) error {
	if _, err := s.repo.GetBlogByID(ctx, blogID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.DeleteBlogWithContent(ctx, blogID)
}

func (s *AdminService) ListReports(ctx context.Context) ([]model.Report, error) {
	return s.reports.List(ctx)
}

func (s *AdminService) UpdateReportStatus(ctx context.Context, reportID int64, status string) error {
	return s.reports.UpdateStatus(ctx, reportID, status)
}

func (s *AdminService) DeleteReport(ctx context.Context, reportID int64) error {
	return s.reports.Delete(ctx, reportID)
}
