package auth

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/pkg"
)

// Session is a signed-in user together with the bearer token issued for them.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, profile domain.UserProfile, email, password string) (*domain.User, error)
}

// authService implements Service.
type authService struct {
	tokens      pkg.TokenService
	userRepo    domain.UserRepository
	tokenExpiry time.Duration
}

// NewService creates a new auth Service.
func NewService(tokens pkg.TokenService, userRepo domain.UserRepository, tokenExpiry time.Duration) Service {
	return &authService{
		tokens:      tokens,
		userRepo:    userRepo,
		tokenExpiry: tokenExpiry,
	}
}

// Login authenticates a user by email and password and issues a JWT for them.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		// Unknown email and wrong password look the same to the caller.
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(strconv.FormatUint(uint64(user.ID), 10), s.tokenExpiry)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to parse generated token", err)
	}

	return &Session{User: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// validateRegisterInput reports every problem with a registration at once.
// profile and email are expected to be trimmed already.
func validateRegisterInput(profile domain.UserProfile, email, password string) error {
	var problems []string
	var appErr *domain.AppError
	if err := profile.Validate(); errors.As(err, &appErr) {
		problems = append(problems, appErr.Details...)
	}
	if email == "" {
		problems = append(problems, "email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Name != "" || addr.Address != email {
		problems = append(problems, "email must be a valid email address")
	}
	switch {
	case len(password) < 8:
		problems = append(problems, "password must be at least 8 characters")
	case len(password) > 72:
		problems = append(problems, "password must not exceed 72 characters")
	}
	if len(problems) > 0 {
		return domain.NewValidationError("invalid registration", problems, nil)
	}
	return nil
}

// Register creates a new account. The email is stored lower-cased and must not
// belong to an existing user.
func (s *authService) Register(ctx context.Context, profile domain.UserProfile, email, password string) (*domain.User, error) {
	profile = profile.Trimmed()
	email = domain.NormalizeEmail(email)
	if err := validateRegisterInput(profile, email, password); err != nil {
		return nil, err
	}

	switch _, err := s.userRepo.GetByEmail(ctx, email); {
	case err == nil:
		return nil, domain.NewAppError(domain.CodeAlreadyExists, "email is already registered", nil)
	case !domain.IsNotFound(err):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := domain.User{Email: email, PasswordHash: string(hash)}
	user.SetProfile(profile)

	// The unique index still catches a concurrent registration of the same email.
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
