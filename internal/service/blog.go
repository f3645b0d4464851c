package service

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/media"
	"github.com/blogstack/backend/internal/model"
)

type BlogService struct {
	repo          *db.Postgres
	storage       *media.Storage
	notifications *NotificationService
}

func NewBlogService(repo *db.Postgres, storage *media.Storage, notifications *NotificationService) *BlogService {
	return &BlogService{repo: repo, storage: storage, notifications: notifications}
}

// BlogUpdateInput carries the update form. When MediaChanged is set, KeepMedia
// lists the old paths to retain and Files the new uploads to append; otherwise
// Files (when present) replaces all media, and absent Files leaves media alone.
type BlogUpdateInput struct {
	Title        string
	Content      string
	Files        []*multipart.FileHeader
	MediaChanged bool
	KeepMedia    []string
}

// Create validates and stores the media batch, persists the blog, and fans a
// NEW_BLOG notification out to every follower of the author.
func (s *BlogService) Create(ctx context.Context, principal *model.Principal, title, content string, files []*multipart.FileHeader) (*model.Blog, error) {
	if err := media.Validate(files); err != nil {
		return nil, err
	}

	paths, err := s.storage.Store(files)
	if err != nil {
		return nil, err
	}

	blog, err := s.repo.CreateBlog(ctx, principal.UserID, title, content, paths)
	if err != nil {
		return nil, err
	}

	followers, err := s.repo.ListFollowers(ctx, principal.UserID)
	if err == nil {
		for _, follower := range followers {
			s.notifications.Notify(ctx, follower.UserID,
				model.NotificationNewBlog,
				principal.Username+" posted a new blog",
				blog.ID)
		}
	}

	return blog, nil
}

// Get returns the blog with fresh like/comment counts. Hidden blogs are only
// visible to their owner and admins; everyone else sees a not-found.
func (s *BlogService) Get(ctx context.Context, blogID int64, viewer *model.Principal) (*model.Blog, error) {
	blog, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !blog.Visible && !canSeeHidden(blog, viewer) {
		return nil, ErrNotFound
	}

	if blog.LikeCount, err = s.repo.CountLikesByBlog(ctx, blogID); err != nil {
		return nil, err
	}
	if blog.CommentCount, err = s.repo.CountCommentsByBlog(ctx, blogID); err != nil {
		return nil, err
	}

	return blog, nil
}

func canSeeHidden(blog *model.Blog, viewer *model.Principal) bool {
	if viewer == nil {
		return false
	}
	return viewer.UserID == blog.UserID || viewer.Authority == model.AuthorityAdmin
}

func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	return s.repo.ListBlogs(ctx, false)
}

func (s *BlogService) ListByAuthor(ctx context.Context, username string) ([]model.Blog, error) {
	if _, err := s.repo.GetUserByUsername(ctx, username); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListBlogsByAuthor(ctx, username)
}

// Update applies a partial edit by the blog owner, reconciling stored media
// files with the requested keep/replace mode.
func (s *BlogService) Update(ctx context.Context, blogID int64, principal *model.Principal, input BlogUpdateInput) (*model.Blog, error) {
	blog, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if blog.UserID != principal.UserID {
		return nil, ErrAccessDenied
	}

	title := blog.Title
	if t := strings.TrimSpace(input.Title); t != "" {
		title = t
	}
	content := blog.Content
	if c := strings.TrimSpace(input.Content); c != "" {
		content = c
	}

	finalMedia := blog.Media

	switch {
	case input.MediaChanged:
		keep := input.KeepMedia
		if keep == nil {
			keep = []string{}
		}

		var toDelete []string
		for _, p := range blog.Media {
			if !contains(keep, p) {
				toDelete = append(toDelete, p)
			}
		}
		s.storage.Delete(toDelete)

		var newPaths []string
		if len(input.Files) > 0 {
			if err := media.Validate(input.Files); err != nil {
				return nil, err
			}
			if newPaths, err = s.storage.Store(input.Files); err != nil {
				return nil, err
			}
		}

		finalMedia = append(append([]string{}, keep...), newPaths...)

	case len(input.Files) > 0:
		// Legacy mode: replace everything.
		if err := media.Validate(input.Files); err != nil {
			return nil, err
		}
		s.storage.Delete(blog.Media)
		if finalMedia, err = s.storage.Store(input.Files); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateBlog(ctx, blogID, title, content, finalMedia, time.Now()); err != nil {
		return nil, err
	}

	return s.repo.GetBlogByID(ctx, blogID)
}

// Delete removes an owned blog with its dependents and media files.
func (s *BlogService) Delete(ctx context.Context, blogID int64, principal *model.Principal) error {
	blog, err := s.repo.GetBlogByID(ctx, blogID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}

	if blog.UserID != principal.UserID {
		return ErrAccessDenied
	}

	if err := s.repo.DeleteBlogWithContent(ctx, blogID); err != nil {
		return err
	}

	s.storage.Delete(blog.Media)
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
