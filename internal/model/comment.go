package model

import "time"

type Comment struct {
	ID        int64
	BlogID    int64
	UserID    int64
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CommentRequest struct {
	BlogID  int64  `json:"blogId" binding:"required"`
	Content string `json:"content" binding:"required,max=10000"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blogId"`
	UserID    int64     `json:"userId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		BlogID:    c.BlogID,
		UserID:    c.UserID,
		Author:    c.Author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
