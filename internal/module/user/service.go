package user

import (
	"context"

	"github.com/simp-lee/gonotes/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateUser loads the existing user, replaces their names, and persists the change.
// The email address is the login identity and cannot be changed here.
func (s *userService) UpdateUser(ctx context.Context, id uint, profile domain.UserProfile) (*domain.User, error) {
	profile = profile.Trimmed()
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.SetProfile(profile)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user by ID together with all of their notes.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
