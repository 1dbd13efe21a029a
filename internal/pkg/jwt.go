package pkg

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or signed
// with an unexpected key or method.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims are the claims carried by an access token. The subject is the
// owning user's ID in decimal form.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim as a user ID.
func (c *TokenClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenService issues and verifies HS256 access tokens.
type TokenService interface {
	GenerateToken(userID string, expiry time.Duration) (string, error)
	ParseToken(token string) (*TokenClaims, error)
}

type hmacTokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
// Panics if secret is empty.
func NewTokenService(secret string) TokenService {
	if secret == "" {
		panic("pkg.NewTokenService: secret must not be empty")
	}
	return &hmacTokenService{secret: []byte(secret), now: time.Now}
}

// GenerateToken signs a token whose subject is userID and which expires after expiry.
func (s *hmacTokenService) GenerateToken(userID string, expiry time.Duration) (string, error) {
	now := s.now().UTC()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies the signature and expiry of token and returns its claims.
func (s *hmacTokenService) ParseToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
