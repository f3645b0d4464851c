package model

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Banned       bool
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the resolved, request-scoped identity attached after a
// successful auth check. It carries exactly one derived authority.
type Principal struct {
	UserID       int64
	Username     string
	PasswordHash string
	Authority    string
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Banned    bool      `json:"banned"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Banned:    u.Banned,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
