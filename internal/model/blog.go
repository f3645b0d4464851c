package model

import "time"

type Blog struct {
	ID           int64
	UserID       int64
	Author       string
	Title        string
	Content      string
	Media        []string
	Visible      bool
	LikeCount    int64
	CommentCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BlogResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Author       string    `json:"author"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Media        []string  `json:"media"`
	Visible      bool      `json:"visible"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (b *Blog) ToResponse() BlogResponse {
	media := b.Media
	if media == nil {
		media = []string{}
	}
	return BlogResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		Author:       b.Author,
		Title:        b.Title,
		Content:      b.Content,
		Media:        media,
		Visible:      b.Visible,
		LikeCount:    b.LikeCount,
		CommentCount: b.CommentCount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
