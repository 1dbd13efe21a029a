package domain

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest first or last name accepted, in characters.
const MaxNameLength = 100

// User represents a registered account. Every note is owned by exactly one user.
type User struct {
	BaseModel
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
}

// Profile returns the editable part of u.
func (u *User) Profile() UserProfile {
	return UserProfile{FirstName: u.FirstName, LastName: u.LastName}
}

// SetProfile copies p into u.
func (u *User) SetProfile(p UserProfile) {
	u.FirstName = p.FirstName
	u.LastName = p.LastName
}

// UserProfile holds the names a user may set at registration and change later.
type UserProfile struct {
	FirstName string
	LastName  string
}

// Trimmed returns p with surrounding whitespace removed from every field.
func (p UserProfile) Trimmed() UserProfile {
	return UserProfile{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
	}
}

// Validate reports every missing or over-long name as one validation error.
func (p UserProfile) Validate() error {
	var problems []string
	problems = appendNameProblem(problems, "first name", p.FirstName)
	problems = appendNameProblem(problems, "last name", p.LastName)
	if len(problems) > 0 {
		return NewValidationError("invalid profile", problems, nil)
	}
	return nil
}

func appendNameProblem(problems []string, field, value string) []string {
	switch n := utf8.RuneCountInString(strings.TrimSpace(value)); {
	case n == 0:
		return append(problems, field+" is required")
	case n > MaxNameLength:
		return append(problems, field+" must be at most 100 characters")
	}
	return problems
}

// NormalizeEmail trims and lower-cases an address so lookups ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByEmail expects an address already passed through NormalizeEmail.
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	// Delete removes the user together with every note they own.
	Delete(ctx context.Context, id uint) error
}

// UserService defines the business logic interface for the current user's account.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, id uint, profile UserProfile) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}
