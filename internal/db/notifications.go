package db

import (
	"context"

	"github.com/blogstack/backend/internal/model"
)

const notificationColumns = "id, user_id, type, content, related_id, is_read, created_at, updated_at"

func scanNotification(row interface{ Scan(dest ...any) error }) (*model.Notification, error) {
	var n model.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Content,
		&n.RelatedID,
		&n.IsRead,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (db *Postgres) CreateNotification(ctx context.Context, userID int64, ntype, content string, relatedID int64) error {
	query := `
		INSERT INTO notifications (user_id, type, content, related_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := db.Pool.Exec(ctx, query, userID, ntype, content, relatedID)
	return err
}

func (db *Postgres) GetNotificationByID(ctx context.Context, notificationID int64) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(db.Pool.QueryRow(ctx, query, notificationID))
}

func (db *Postgres) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (db *Postgres) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, notificationID)
	return err
}

func (db *Postgres) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE user_id = $1 AND NOT is_read`
	_, err := db.Pool.Exec(ctx, query, userID)
	return err
}

func (db *Postgres) DeleteNotification(ctx context.Context, notificationID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, notificationID)
	return err
}

func (db *Postgres) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`
	err := db.Pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
