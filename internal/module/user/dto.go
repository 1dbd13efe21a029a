package user

import "github.com/simp-lee/gonotes/internal/domain"

// UpdateProfileRequest represents the input for renaming the current user.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=100"`
}

func (r UpdateProfileRequest) profile() domain.UserProfile {
	return domain.UserProfile{FirstName: r.FirstName, LastName: r.LastName}
}
