package db

import (
	"context"

	"github.com/blogstack/backend/internal/model"
)

const commentColumns = `c.id, c.blog_id, c.user_id, u.username, c.content, c.created_at, c.updated_at`

func scanComment(row interface{ Scan(dest ...any) error }) (*model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID,
		&comment.BlogID,
		&comment.UserID,
		&comment.Author,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (db *Postgres) CreateComment(ctx context.Context, blogID, userID int64, content string) (*model.Comment, error) {
	query := `
		WITH inserted AS (
			INSERT INTO comments (blog_id, user_id, content, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING *
		)
		SELECT ` + commentColumns + `
		FROM inserted c
		JOIN users u ON u.id = c.user_id
	`
	return scanComment(db.Pool.QueryRow(ctx, query, blogID, userID, content))
}

func (db *Postgres) GetCommentByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`
	return scanComment(db.Pool.QueryRow(ctx, query, commentID))
}

func (db *Postgres) ListCommentsByBlog(ctx context.Context, blogID int64) ([]model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (db *Postgres) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	return err
}

func (db *Postgres) CountCommentsByBlog(ctx context.Context, blogID int64) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID).Scan(&count)
	return count, err
}
