package model

import "time"

type Follow struct {
	ID          int64
	FollowerID  int64
	FollowingID int64
	CreatedAt   time.Time
}

type FollowerResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
