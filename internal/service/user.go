package service

import (
	"context"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

type UserService struct {
	repo *db.Postgres
}

func NewUserService(repo *db.Postgres) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Search matches the query as a substring of username or email.
func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	return s.repo.SearchUsers(ctx, query)
}
