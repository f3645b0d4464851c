package model

import "time"

const (
	NotificationNewBlog    = "NEW_BLOG"
	NotificationNewComment = "NEW_COMMENT"
	NotificationNewLike    = "NEW_LIKE"
	NotificationNewFollow  = "NEW_FOLLOW"
)

type Notification struct {
	ID        int64
	UserID    int64
	Type      string
	Content   string
	RelatedID int64
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	RelatedID int64     `json:"relatedId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
