package db

import (
	"context"

	"github.com/blogstack/backend/internal/model"
)

func (db *Postgres) FollowExists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	err := db.Pool.QueryRow(ctx, query, followerID, followingID).Scan(&exists)
	return exists, err
}

func (db *Postgres) CreateFollow(ctx context.Context, followerID, followingID int64) error {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	_, err := db.Pool.Exec(ctx, query, followerID, followingID)
	return err
}

func (db *Postgres) DeleteFollow(ctx context.Context, followerID, followingID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	return err
}

// ListFollowers returns the users following userID.
func (db *Postgres) ListFollowers(ctx context.Context, userID int64) ([]model.FollowerResponse, error) {
	query := `
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`
	return db.queryFollowers(ctx, query, userID)
}

// ListFollowing returns the users that userID follows.
func (db *Postgres) ListFollowing(ctx context.Context, userID int64) ([]model.FollowerResponse, error) {
	query := `
		SELECT u.id, u.username
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	return db.queryFollowers(ctx, query, userID)
}

func (db *Postgres) queryFollowers(ctx context.Context, query string, userID int64) ([]model.FollowerResponse, error) {
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.FollowerResponse
	for rows.Next() {
		var u model.FollowerResponse
		if err := rows.Scan(&u.UserID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
