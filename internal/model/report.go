package model

import "time"

const (
	ReportTypeBlog    = "BLOG"
	ReportTypeUser    = "USER"
	ReportTypeComment = "COMMENT"

	ReportStatusOpen      = "OPEN"
	ReportStatusResolved  = "RESOLVED"
	ReportStatusDismissed = "DISMISSED"
)

type Report struct {
	ID           int64
	ReportedByID int64
	ReportedBy   string
	TargetID     int64
	Type         string
	Reason       string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ReportRequest struct {
	TargetID int64  `json:"targetId" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=BLOG USER COMMENT"`
	Reason   string `json:"reason" binding:"required,max=255"`
}

type ReportResponse struct {
	ID         int64     `json:"id"`
	ReportedBy string    `json:"reportedBy"`
	TargetID   int64     `json:"targetId"`
	Type       string    `json:"type"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *Report) ToResponse() ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		ReportedBy: r.ReportedBy,
		TargetID:   r.TargetID,
		Type:       r.Type,
		Reason:     r.Reason,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}
