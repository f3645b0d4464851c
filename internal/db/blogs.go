package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/blogstack/backend/internal/model"
)

const blogColumns = `b.id, b.user_id, u.username, b.title, b.content, b.media, b.visible, b.created_at, b.updated_at`

func scanBlog(row interface{ Scan(dest ...any) error }) (*model.Blog, error) {
	var blog model.Blog
	var mediaJSON string
	err := row.Scan(
		&blog.ID,
		&blog.UserID,
		&blog.Author,
		&blog.Title,
		&blog.Content,
		&mediaJSON,
		&blog.Visible,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(mediaJSON), &blog.Media); err != nil {
		blog.Media = nil
	}
	return &blog, nil
}

func encodeMedia(media []string) string {
	if media == nil {
		media = []string{}
	}
	raw, err := json.Marshal(media)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func (db *Postgres) CreateBlog(ctx context.Context, userID int64, title, content string, media []string) (*model.Blog, error) {
	query := `
		WITH inserted AS (
			INSERT INTO blogs (user_id, title, content, media, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING *
		)
		SELECT ` + blogColumns + `
		FROM inserted b
		JOIN users u ON u.id = b.user_id
	`
	return scanBlog(db.Pool.QueryRow(ctx, query, userID, title, content, encodeMedia(media)))
}

func (db *Postgres) GetBlogByID(ctx context.Context, blogID int64) (*model.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
	`
	return scanBlog(db.Pool.QueryRow(ctx, query, blogID))
}

func (db *Postgres) ListBlogs(ctx context.Context, includeHidden bool) ([]model.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE $1 OR b.visible
		ORDER BY b.created_at DESC
	`
	return db.queryBlogs(ctx, query, includeHidden)
}

func (db *Postgres) ListBlogsByAuthor(ctx context.Context, username string) ([]model.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE u.username = $1 AND b.visible
		ORDER BY b.created_at DESC
	`
	return db.queryBlogs(ctx, query, username)
}

func (db *Postgres) queryBlogs(ctx context.Context, query string, args ...any) ([]model.Blog, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	return blogs, rows.Err()
}

func (db *Postgres) UpdateBlog(ctx context.Context, blogID int64, title, content string, media []string, updatedAt time.Time) error {
	query := `
		UPDATE blogs
		SET title = $2, content = $3, media = $4, updated_at = $5
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query, blogID, title, content, encodeMedia(media), updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ToggleBlogVisible flips the visibility flag and returns the new state.
func (db *Postgres) ToggleBlogVisible(ctx context.Context, blogID int64) (bool, error) {
	query := `
		UPDATE blogs
		SET visible = NOT visible, updated_at = NOW()
		WHERE id = $1
		RETURNING visible
	`
	var visible bool
	if err := db.Pool.QueryRow(ctx, query, blogID).Scan(&visible); err != nil {
		return false, err
	}
	return visible, nil
}

// DeleteBlogWithContent removes a blog and its comments, likes and reports.
func (db *Postgres) DeleteBlogWithContent(ctx context.Context, blogID int64) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	statements := []string{
		`DELETE FROM comments WHERE blog_id = $1`,
		`DELETE FROM likes WHERE blog_id = $1`,
		`DELETE FROM reports WHERE target_id = $1 AND type = 'BLOG'`,
		`DELETE FROM blogs WHERE id = $1`,
	}

	for _, stmt := range statements {
		if _, err = tx.Exec(ctx, stmt, blogID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
