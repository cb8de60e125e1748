package http

import (
	"time"

	"github.com/nekogravitycat/resort-booking-backend/internal/user"
)

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	IsStaff     bool       `json:"is_staff"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		IsStaff:     u.IsStaff,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}
