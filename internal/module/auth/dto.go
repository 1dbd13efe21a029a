package auth

import (
	"time"

	"github.com/simp-lee/gonotes/internal/domain"
)

// LoginRequest represents the input for user login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest represents the input for user registration.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=100"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

func (r RegisterRequest) profile() domain.UserProfile {
	return domain.UserProfile{FirstName: r.FirstName, LastName: r.LastName}
}

// UserResponse is the public view of an account. Login fills in the token fields.
type UserResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt int64     `json:"expires_at,omitempty"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func newSessionResponse(s *Session) UserResponse {
	resp := newUserResponse(s.User)
	resp.Token = s.Token
	resp.ExpiresAt = s.ExpiresAt.Unix()
	return resp
}
