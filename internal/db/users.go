package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/blogstack/backend/internal/model"
)

const userColumns = "id, username, email, password_hash, banned, role, created_at, updated_at"

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Banned,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, username, email, passwordHash, role string) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, username, email, passwordHash, role))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) SearchUsers(ctx context.Context, q string) ([]model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY username
	`
	rows, err := db.Pool.Query(ctx, query, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (db *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (db *Postgres) SetUserBanned(ctx context.Context, userID int64, banned bool) error {
	query := `UPDATE users SET banned = $2, updated_at = NOW() WHERE id = $1`
	tag, err := db.Pool.Exec(ctx, query, userID, banned)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteUserWithContent removes a user and everything they created, children
// first so no foreign key is left dangling mid-transaction.
func (db *Postgres) DeleteUserWithContent(ctx context.Context, userID int64) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	statements := []string{
		`DELETE FROM comments WHERE user_id = $1`,
		`DELETE FROM likes WHERE user_id = $1`,
		`DELETE FROM comments WHERE blog_id IN (SELECT id FROM blogs WHERE user_id = $1)`,
		`DELETE FROM likes WHERE blog_id IN (SELECT id FROM blogs WHERE user_id = $1)`,
		`DELETE FROM reports WHERE type = 'BLOG' AND target_id IN (SELECT id FROM blogs WHERE user_id = $1)`,
		`DELETE FROM blogs WHERE user_id = $1`,
		`DELETE FROM follows WHERE follower_id = $1 OR following_id = $1`,
		`DELETE FROM notifications WHERE user_id = $1`,
		`DELETE FROM reports WHERE reported_by_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}

	for _, stmt := range statements {
		if _, err = tx.Exec(ctx, stmt, userID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
