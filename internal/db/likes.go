package db

import "context"

func (db *Postgres) LikeExists(ctx context.Context, blogID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE blog_id = $1 AND user_id = $2)`
	err := db.Pool.QueryRow(ctx, query, blogID, userID).Scan(&exists)
	return exists, err
}

func (db *Postgres) CreateLike(ctx context.Context, blogID, userID int64) error {
	query := `
		INSERT INTO likes (blog_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (blog_id, user_id) DO NOTHING
	`
	_, err := db.Pool.Exec(ctx, query, blogID, userID)
	return err
}

func (db *Postgres) DeleteLike(ctx context.Context, blogID, userID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM likes WHERE blog_id = $1 AND user_id = $2`, blogID, userID)
	return err
}

func (db *Postgres) CountLikesByBlog(ctx context.Context, blogID int64) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&count)
	return count, err
}
