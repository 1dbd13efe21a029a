package pkg

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret)

	token, err := svc.GenerateToken("42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("subject = %q; want %q", claims.Subject, "42")
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if id != 42 {
		t.Errorf("UserID = %d; want 42", id)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Errorf("expected expiry in the future, got %v", claims.ExpiresAt)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(testSecret).(*hmacTokenService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken("1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService(testSecret).GenerateToken("1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewTokenService("fedcba9876543210fedcba9876543210")
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestTokenService_RejectsOtherSigningMethod(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := NewTokenService(testSecret).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b.c"} {
		if _, err := NewTokenService(testSecret).ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseToken(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenClaims_UserID(t *testing.T) {
	tests := []struct {
		subject string
		want    uint
		wantErr bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		c := &TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: tt.subject}}
		got, err := c.UserID()
		if (err != nil) != tt.wantErr {
			t.Errorf("UserID(%q) err = %v; wantErr %v", tt.subject, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("UserID(%q) = %d; want %d", tt.subject, got, tt.want)
		}
	}
}

func TestNewTokenService_PanicsOnEmptySecret(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty secret")
		}
	}()
	_ = NewTokenService("")
}
