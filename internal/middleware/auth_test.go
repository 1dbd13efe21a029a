package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/simp-lee/gonotes/internal/pkg"
)

const authTestSecret = "0123456789abcdef0123456789abcdef"

func setupAuthRouter(tokens pkg.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(Auth(tokens))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetUserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user")
			return
		}
		c.String(http.StatusOK, fmt.Sprint(id))
	})
	r.GET("/ctx", func(c *gin.Context) {
		attrs := logger.FromContext(c.Request.Context())
		c.String(http.StatusOK, findAttrValue(attrs, "user_id"))
	})
	return r
}

func mustToken(t *testing.T, tokens pkg.TokenService, subject string, expiry time.Duration) string {
	t.Helper()
	tok, err := tokens.GenerateToken(subject, expiry)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := pkg.NewTokenService(authTestSecret)
	r := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, tokens, "7", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "7" {
		t.Errorf("expected user id 7, got %q", w.Body.String())
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	tokens := pkg.NewTokenService(authTestSecret)
	r := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+mustToken(t, tokens, "3", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestAuth_UserIDInGoContext(t *testing.T) {
	tokens := pkg.NewTokenService(authTestSecret)
	r := setupAuthRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, tokens, "12", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "12" {
		t.Errorf("expected user_id attr 12 in context, got %q", w.Body.String())
	}
}

func TestAuth_Rejects(t *testing.T) {
	tokens := pkg.NewTokenService(authTestSecret)
	foreign := pkg.NewTokenService("fedcba9876543210fedcba9876543210")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"foreign signature", "Bearer " + mustToken(t, foreign, "7", time.Hour)},
		{"expired", "Bearer " + mustToken(t, tokens, "7", -time.Minute)},
		{"non-numeric subject", "Bearer " + mustToken(t, tokens, "alice", time.Hour)},
		{"zero subject", "Bearer " + mustToken(t, tokens, "0", time.Hour)},
	}

	r := setupAuthRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", w.Code)
			}
			var resp pkg.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Code != http.StatusUnauthorized {
				t.Errorf("expected code 401, got %d", resp.Code)
			}
		})
	}
}

func TestGetUserID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if id, ok := GetUserID(c); ok || id != 0 {
		t.Errorf("expected (0, false), got (%d, %v)", id, ok)
	}
}

func TestAuth_PanicsOnNilTokenService(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil token service")
		}
	}()
	_ = Auth(nil)
}
