package service

import (
	"context"

	"github.com/blogstack/backend/internal/db"
	"github.com/blogstack/backend/internal/model"
)

type ReportService struct {
	repo *db.Postgres
}

func NewReportService(repo *db.Postgres) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Create(ctx context.Context, principal *model.Principal, req model.ReportRequest) (*model.Report, error) {
	report, err := s.repo.CreateReport(ctx, principal.UserID, req.TargetID, req.Type, req.Reason)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context) ([]model.Report, error) {
	return s.repo.ListReports(ctx)
}

func (s *ReportService) UpdateStatus(ctx context.Context, reportID int64, status string) error {
	switch status {
	case model.ReportStatusOpen, model.ReportStatusResolved, model.ReportStatusDismissed:
	default:
		return ErrInvalidInput
	}
	if err := s.repo.UpdateReportStatus(ctx, reportID, status); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ReportService) Delete(ctx context.Context, reportID int64) error {
	return s.repo.DeleteReport(ctx, reportID)
}
