package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/blogstack/backend/internal/model"
)

const reportColumns = `r.id, r.reported_by_id, u.username, r.target_id, r.type, r.reason, r.status, r.created_at, r.updated_at`

func scanReport(row interface{ Scan(dest ...any) error }) (*model.Report, error) {
	var report model.Report
	err := row.Scan(
		&report.ID,
		&report.ReportedByID,
		&report.ReportedBy,
		&report.TargetID,
		&report.Type,
		&report.Reason,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (db *Postgres) CreateReport(ctx context.Context, reportedByID, targetID int64, rtype, reason string) (*model.Report, error) {
	query := `
		WITH inserted AS (
			INSERT INTO reports (reported_by_id, target_id, type, reason, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 'OPEN', NOW(), NOW())
			RETURNING *
		)
		SELECT ` + reportColumns + `
		FROM inserted r
		JOIN users u ON u.id = r.reported_by_id
	`
	return scanReport(db.Pool.QueryRow(ctx, query, reportedByID, targetID, rtype, reason))
}

func (db *Postgres) ListReports(ctx context.Context) ([]model.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports r
		JOIN users u ON u.id = r.reported_by_id
		ORDER BY r.created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

func (db *Postgres) UpdateReportStatus(ctx context.Context, reportID int64, status string) error {
	query := `UPDATE reports SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := db.Pool.Exec(ctx, query, reportID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (db *Postgres) DeleteReport(ctx context.Context, reportID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, reportID)
	return err
}
